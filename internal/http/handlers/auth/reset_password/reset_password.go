package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authms/internal/core/domain/account"
	"authms/internal/core/services"
	resetpassword "authms/internal/core/services/reset_password"
	"authms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(service services.Service[resetpassword.Input, resetpassword.Result]) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(6, 256)),
		validation.Field(&i.ConfirmPassword, validation.Required, validation.Length(0, 256)),
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

	_, err := h.service.Run(r.Context(), resetpassword.Input{
		Token:           account.ResetToken(input.Token),
		NewPassword:     account.RawPassword(input.NewPassword),
		ConfirmPassword: account.RawPassword(input.ConfirmPassword),
	})
	if errors.Is(err, account.ErrInvalidResetToken) {
		response.RenderError(rw, "invalid password reset token", http.StatusBadRequest)
		return
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		response.RenderNotFound(rw, "account does not exist")
		return
	}
	if errors.Is(err, account.ErrPasswordMismatch) {
		response.RenderError(rw, "password confirmation does not match", http.StatusBadRequest)
		return
	}
	if errors.Is(err, account.ErrResetTokenExpired) {
		response.RenderError(rw, "password reset token has expired", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
