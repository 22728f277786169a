package activateaccount

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

// Result reports whether the activation link pointed at a real account.
// An unknown account is not an error, the operation answers "is this link
// still valid" and is safe to redeliver.
type Result struct {
	AccountExists bool
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
	a, err := s.accountRepository.SetVerified(ctx, input.AccountID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Activation requested for an unknown account.",
			logging.Entry("accountId", input.AccountID),
		)
		return Result{AccountExists: false}, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("accountId", input.AccountID))
		return result, err
	}

	s.log.Info(ctx, "Account successfully activated.", logging.Entry("accountId", a.ID))
	return Result{AccountExists: true}, nil
}
