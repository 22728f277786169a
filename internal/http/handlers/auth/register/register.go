package register

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/core/domain/ratelimiter"
	"authms/internal/core/services"
	"authms/internal/core/services/register"
	"authms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[register.Input, register.Result]
}

func New(service services.Service[register.Input, register.Result]) *Handler {
	return &Handler{service: service}
}

type Input struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     string  `json:"email"`
	Password  *string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Length(6, 256)),
		validation.Field(&i.FirstName, validation.Length(0, 256)),
		validation.Field(&i.LastName, validation.Length(0, 256)),
	)
}

type Result struct {
	Account response.Account `json:"account"`
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

	serviceInput := register.Input{Email: c.NewEmail(input.Email)}
	if input.FirstName != nil {
		serviceInput.FirstName = c.NewOptional(*input.FirstName, true)
	}
	if input.LastName != nil {
		serviceInput.LastName = c.NewOptional(*input.LastName, true)
	}
	if input.Password != nil {
		serviceInput.Password = c.NewOptional(account.RawPassword(*input.Password), true)
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if errors.Is(err, account.ErrEmailAlreadyExists) {
		response.RenderError(rw, "email already exists", http.StatusConflict)
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

	created := response.Account{}
	created.FromDomainAccount(result.Account)
	response.Render(rw, Result{Account: created}, http.StatusCreated)
}
