package account

import (
	c "authms/internal/core/domain/common"
	"context"
	"time"
)

type CreateAccountInput struct {
	Email        c.Email
	FirstName    c.Optional[string]
	LastName     c.Optional[string]
	PasswordHash c.Optional[PasswordHash]
	Role         Role
	Avatar       string
	CreatedAt    time.Time
}

type UpdateAccountInput struct {
	ID                ID
	DoFirstNameUpdate bool
	FirstName         c.Optional[string]
	DoLastNameUpdate  bool
	LastName          c.Optional[string]
	DoAvatarUpdate    bool
	Avatar            string
}

// AccountRepository must enforce email uniqueness on Create, the pre-check
// in the registration service is advisory only.
type AccountRepository interface {
	Create(ctx context.Context, input CreateAccountInput) (Account, error)
	GetByID(ctx context.Context, id ID) (Account, error)
	GetByEmail(ctx context.Context, email c.Email) (Account, error)
	SetVerified(ctx context.Context, id ID) (Account, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	Update(ctx context.Context, input UpdateAccountInput) (Account, error)
}

type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token PasswordResetToken) error
	// Update overwrites the live token record for token.Email in place.
	Update(ctx context.Context, token PasswordResetToken) error
	GetByEmail(ctx context.Context, email c.Email) (PasswordResetToken, error)
	GetByToken(ctx context.Context, token ResetToken) (PasswordResetToken, error)
	DeleteByEmail(ctx context.Context, email c.Email) error
}
