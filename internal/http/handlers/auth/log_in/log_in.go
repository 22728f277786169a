package login

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/core/domain/ratelimiter"
	"authms/internal/core/services"
	login "authms/internal/core/services/log_in"
	"authms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[login.Input, login.Result]
}

func New(service services.Service[login.Input, login.Result]) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
	)
}

type Result struct {
	Token string `json:"token"`
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

	result, err := h.service.Run(
		r.Context(),
		login.Input{Email: c.NewEmail(input.Email), Password: account.RawPassword(input.Password)},
	)
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		response.RenderNotFound(rw, "account does not exist")
		return
	}
	if errors.Is(err, account.ErrInvalidCredentials) {
		response.RenderError(rw, "invalid credentials", http.StatusUnauthorized)
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

	response.Render(rw, Result{Token: string(result.Token)}, http.StatusOK)
}
