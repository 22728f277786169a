package me

import (
	"errors"
	"net/http"

	"authms/internal/core/domain/account"
	"authms/internal/core/services"
	getprofile "authms/internal/core/services/get_profile"
	"authms/internal/http/handlers/auth"
	"authms/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[getprofile.Input, getprofile.Result]
}

func New(service services.Service[getprofile.Input, getprofile.Result]) *Handler {
	return &Handler{service: service}
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

	result, err := h.service.Run(r.Context(), getprofile.Input{AccountID: accountID})
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		// The token outlived its account.
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	profile := response.Account{}
	profile.FromDomainAccount(result.Account)
	response.Render(rw, Result{Account: profile}, http.StatusOK)
}
