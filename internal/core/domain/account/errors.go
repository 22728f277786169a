package account

import "errors"

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrAccountDoesNotExist = errors.New("account does not exist")
	ErrInvalidCredentials  = errors.New("invalid password")
	ErrInvalidResetToken   = errors.New("invalid password reset token")
	ErrResetTokenNotFound  = errors.New("password reset token does not exist")
	ErrResetTokenExpired   = errors.New("password reset token expired")
	ErrPasswordMismatch    = errors.New("password confirmation does not match")

	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrSessionTokenExpired = errors.New("session token expired")
)
