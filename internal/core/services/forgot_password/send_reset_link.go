package forgotpassword

import (
	"context"
	"fmt"

	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/domain/notification"
	"authms/internal/core/services"
)

type serviceWithResetLinkSending struct {
	log        logging.Logger
	dispatcher notification.Dispatcher
	baseURL    string
	sender     string
	inner      services.Service[Input, Result]
}

// NewWithResetLinkSending dispatches the password reset message once the
// token has been stored. A dispatch failure does not roll the token back.
func NewWithResetLinkSending(
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
	return &serviceWithResetLinkSending{
		log:        log,
		dispatcher: dispatcher,
		baseURL:    baseURL,
		sender:     sender,
		inner:      inner,
	}
}

func (s *serviceWithResetLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password/%s", s.baseURL, result.Token)
	message := notification.Message{
		To:      string(input.Email),
		From:    s.sender,
		Subject: "Reset your password",
		Text:    fmt.Sprintf("Follow the link to reset your password: %s", resetLink),
		HTML:    fmt.Sprintf(`<p>Follow the link to <a href="%s">reset your password</a>.</p>`, resetLink),
	}

	go func() {
		if err := s.dispatcher.Dispatch(context.Background(), message); err != nil {
			s.log.Error(
				context.Background(),
				"Could not dispatch password reset message.",
				logging.Entry("email", input.Email),
				logging.Entry("err", err),
			)
			return
		}
		s.log.Info(
			context.Background(),
			"Password reset message has been dispatched.",
			logging.Entry("email", input.Email),
		)
	}()

	return result, nil
}
