package forgotpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/core/domain/ratelimiter"
	"authms/internal/core/services"
	forgotpassword "authms/internal/core/services/forgot_password"
	"authms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[forgotpassword.Input, forgotpassword.Result]
	isTestMode bool
}

func New(
	service services.Service[forgotpassword.Input, forgotpassword.Result],
	isTestMode bool,
) *Handler {
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), forgotpassword.Input{Email: c.NewEmail(input.Email)})
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		response.RenderNotFound(rw, "account does not exist")
		return
	}
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-password-reset-token", string(result.Token))
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}
