package getprofile

import (
	"context"
	"errors"

	"authms/internal/core/domain/account"
	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/services"
)

type Input struct {
	AccountID account.ID
}

type Result struct {
	Account account.Account
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByID(ctx, input.AccountID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("accountId", input.AccountID))
		return result, err
	}
	return Result{Account: a}, nil
}
