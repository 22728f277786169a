package response

import (
	"time"

	"authms/internal/core/domain/account"
)

type Account struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Account) FromDomainAccount(da account.Account) {
	a.ID = da.ID.String()
	a.Email = string(da.Email)
	if da.FirstName.IsPresent {
		firstName := da.FirstName.Value
		a.FirstName = &firstName
	}
	if da.LastName.IsPresent {
		lastName := da.LastName.Value
		a.LastName = &lastName
	}
	a.Role = da.Role.String()
	a.IsVerified = da.IsVerified
	a.Avatar = da.Avatar
	a.CreatedAt = da.CreatedAt
}
