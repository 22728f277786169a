package activateaccount

import (
	"net/http"

	"authms/internal/core/domain/account"
	"authms/internal/core/services"
	activateaccount "authms/internal/core/services/activate_account"
	"authms/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[activateaccount.Input, activateaccount.Result]
}

func New(service services.Service[activateaccount.Input, activateaccount.Result]) *Handler {
	return &Handler{service: service}
}

type Result struct {
	AccountExists bool `json:"account_exists"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawAccountID := chi.URLParam(r, "accountID")
	accountID, err := account.ParseID(rawAccountID)
	if err != nil {
		// A link with a mangled id cannot point at any account.
		response.Render(rw, Result{AccountExists: false}, http.StatusOK)
		return
	}

	result, err := h.service.Run(r.Context(), activateaccount.Input{AccountID: accountID})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{AccountExists: result.AccountExists}, http.StatusOK)
}
