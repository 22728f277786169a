package forgotpassword

import (
	"context"
	"errors"
	"time"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "forgot-password::" + string(i.Email)
}

type Result struct {
	Token account.ResetToken
}

type service struct {
	log                  logging.Logger
	accountRepository    account.AccountRepository
	resetTokenRepository account.PasswordResetTokenRepository
	resetTokenGenerator  account.ResetTokenGenerator
	validFor             time.Duration
	now                  func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	resetTokenRepository account.PasswordResetTokenRepository,
	resetTokenGenerator account.ResetTokenGenerator,
	validFor time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if resetTokenRepository == nil {
		panic(e.NewNilArgumentError("resetTokenRepository"))
	}
	if resetTokenGenerator == nil {
		panic(e.NewNilArgumentError("resetTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		accountRepository:    accountRepository,
		resetTokenRepository: resetTokenRepository,
		resetTokenGenerator:  resetTokenGenerator,
		validFor:             validFor,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	_, err = s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for an unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	resetToken := account.PasswordResetToken{
		Email:     input.Email,
		Token:     s.resetTokenGenerator.GenerateResetToken(),
		ExpiresAt: s.now().Add(s.validFor),
	}

	// Overwriting the live record in place keeps exactly one valid token
	// per email, a later request invalidates every earlier token.
	_, err = s.resetTokenRepository.GetByEmail(ctx, input.Email)
	switch {
	case errors.Is(err, account.ErrResetTokenNotFound):
		err = s.resetTokenRepository.Create(ctx, resetToken)
	case err == nil:
		err = s.resetTokenRepository.Update(ctx, resetToken)
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been created.",
		logging.Entry("email", input.Email),
		logging.Entry("expiresAt", resetToken.ExpiresAt),
	)
	return Result{Token: resetToken.Token}, nil
}
