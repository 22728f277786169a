package updateprofile

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/core/services"
	updateprofile "authms/internal/core/services/update_profile"
	"authms/internal/http/handlers/auth"
	"authms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[updateprofile.Input, updateprofile.Result]
}

func New(service services.Service[updateprofile.Input, updateprofile.Result]) *Handler {
	return &Handler{service: service}
}

// Absent fields stay untouched, only the supplied ones are updated.
type Input struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Length(0, 256)),
		validation.Field(&i.LastName, validation.Length(0, 256)),
		validation.Field(&i.Avatar, is.URL, validation.Length(0, 2048)),
	)
}

type Result struct {
	Account response.Account `json:"account"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := updateprofile.Input{AccountID: accountID}
	if input.FirstName != nil {
		serviceInput.DoFirstNameUpdate = true
		serviceInput.FirstName = c.NewOptional(*input.FirstName, true)
	}
	if input.LastName != nil {
		serviceInput.DoLastNameUpdate = true
		serviceInput.LastName = c.NewOptional(*input.LastName, true)
	}
	if input.Avatar != nil {
		serviceInput.DoAvatarUpdate = true
		serviceInput.Avatar = *input.Avatar
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	updated := response.Account{}
	updated.FromDomainAccount(result.Account)
	response.Render(rw, Result{Account: updated}, http.StatusOK)
}
