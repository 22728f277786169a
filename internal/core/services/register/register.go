package register

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
	FirstName c.Optional[string]
	LastName  c.Optional[string]
	Email     c.Email
	Password  c.Optional[account.RawPassword]
}

type Result struct {
	Account account.Account
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	passwordHasher    account.PasswordHasher
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash := c.Optional[account.PasswordHash]{}
	if input.Password.IsPresent {
		hash, err := s.passwordHasher.HashPassword(input.Password.Value)
		if err != nil {
			s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
			return result, err
		}
		passwordHash = c.NewOptional(hash, true)
	}

	// The unique index on email is the source of truth for duplicates,
	// concurrent registrations race on it and exactly one wins.
	createdAccount, err := s.accountRepository.Create(ctx, account.CreateAccountInput{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: passwordHash,
		Role:         account.RoleStandardUser,
		Avatar:       account.DefaultAvatar,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"Account with the email already exists.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new account.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New account has been created.", logging.Entry("accountId", createdAccount.ID))
	return Result{Account: createdAccount}, nil
}
