package updateprofile

import (
	"context"
	"errors"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/services"
)

// Input carries only the non-identity fields, the account id and email
// cannot be changed through this operation.
type Input struct {
	AccountID         account.ID
	DoFirstNameUpdate bool
	FirstName         c.Optional[string]
	DoLastNameUpdate  bool
	LastName          c.Optional[string]
	DoAvatarUpdate    bool
	Avatar            string
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
	updatedAccount, err := s.accountRepository.Update(ctx, account.UpdateAccountInput{
		ID:                input.AccountID,
		DoFirstNameUpdate: input.DoFirstNameUpdate,
		FirstName:         input.FirstName,
		DoLastNameUpdate:  input.DoLastNameUpdate,
		LastName:          input.LastName,
		DoAvatarUpdate:    input.DoAvatarUpdate,
		Avatar:            input.Avatar,
	})
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

	s.log.Info(
		ctx,
		"Account profile successfully updated.",
		logging.Entry("accountId", updatedAccount.ID),
	)
	return Result{Account: updatedAccount}, nil
}
