package register

import (
	"context"
	"fmt"

	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/domain/notification"
	"authms/internal/core/services"
)

type serviceWithActivationLinkSending struct {
	log        logging.Logger
	dispatcher notification.Dispatcher
	baseURL    string
	sender     string
	inner      services.Service[Input, Result]
}

// NewWithActivationLinkSending dispatches the activation message after a
// successful registration. Dispatch is best-effort, a delivery failure is
// logged and never fails the registration itself.
func NewWithActivationLinkSending(
	log logging.Logger,
	dispatcher notification.Dispatcher,
	baseURL string,
	sender string,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithActivationLinkSending{
		log:        log,
		dispatcher: dispatcher,
		baseURL:    baseURL,
		sender:     sender,
		inner:      inner,
	}
}

func (s *serviceWithActivationLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	activationLink := fmt.Sprintf("%s/activate-account/%s", s.baseURL, result.Account.ID)
	message := notification.Message{
		To:      string(result.Account.Email),
		From:    s.sender,
		Subject: "Activate your account",
		Text:    fmt.Sprintf("Follow the link to activate your account: %s", activationLink),
		HTML:    fmt.Sprintf(`<p>Follow the link to <a href="%s">activate your account</a>.</p>`, activationLink),
	}

	// Detached from the request context, the caller must not wait for or
	// depend on delivery.
	go func() {
		if err := s.dispatcher.Dispatch(context.Background(), message); err != nil {
			s.log.Error(
				context.Background(),
				"Could not dispatch activation message.",
				logging.Entry("accountId", result.Account.ID),
				logging.Entry("err", err),
			)
			return
		}
		s.log.Info(
			context.Background(),
			"Activation message has been dispatched.",
			logging.Entry("accountId", result.Account.ID),
		)
	}()

	return result, nil
}
