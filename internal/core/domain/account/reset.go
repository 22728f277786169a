package account

import (
	c "authms/internal/core/domain/common"
	"time"
)

type ResetToken string

// PasswordResetToken is the single live reset token for an email. A new
// forgot-password request overwrites it in place, a successful reset
// deletes it.
type PasswordResetToken struct {
	Email     c.Email
	Token     ResetToken
	ExpiresAt time.Time
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type ResetTokenGenerator interface {
	GenerateResetToken() ResetToken
}
