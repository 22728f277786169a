package resetpassword

import (
	"context"
	"errors"
	"time"

	"authms/internal/core/domain/account"
	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/services"
)

type Input struct {
	Token           account.ResetToken
	NewPassword     account.RawPassword
	ConfirmPassword account.RawPassword
}

type Result struct{}

type service struct {
	log                  logging.Logger
	accountRepository    account.AccountRepository
	resetTokenRepository account.PasswordResetTokenRepository
	passwordHasher       account.PasswordHasher
	now                  func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	resetTokenRepository account.PasswordResetTokenRepository,
	passwordHasher account.PasswordHasher,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		accountRepository:    accountRepository,
		resetTokenRepository: resetTokenRepository,
		passwordHasher:       passwordHasher,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	resetToken, err := s.resetTokenRepository.GetByToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrResetTokenNotFound) {
		return result, account.ErrInvalidResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	a, err := s.accountRepository.GetByEmail(ctx, resetToken.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Account for the reset token no longer exists.",
			logging.Entry("email", resetToken.Email),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", resetToken.Email))
		return result, err
	}

	if input.NewPassword != input.ConfirmPassword {
		return result, account.ErrPasswordMismatch
	}
	if resetToken.IsExpired(s.now()) {
		return result, account.ErrResetTokenExpired
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}
	err = s.accountRepository.SetPassword(ctx, a.ID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update account password.",
			logging.Entry("accountId", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The token is consumed only after the password update went through,
	// otherwise a failed update would burn the only reset attempt.
	if err = s.resetTokenRepository.DeleteByEmail(ctx, resetToken.Email); err != nil {
		s.log.Error(
			ctx,
			"Could not delete consumed password reset token.",
			logging.Entry("email", resetToken.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("accountId", a.ID),
	)
	return result, nil
}
