package login

import (
	"context"
	"errors"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password account.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "log-in::" + string(i.Email)
}

type Result struct {
	Token account.SessionToken
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	passwordHasher    account.PasswordHasher
	sessionIssuer     account.SessionIssuer
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	passwordHasher account.PasswordHasher,
	sessionIssuer account.SessionIssuer,
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
	if sessionIssuer == nil {
		panic(e.NewNilArgumentError("sessionIssuer"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		sessionIssuer:     sessionIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	// Unknown email and wrong password stay distinguishable on purpose,
	// matching the observed behavior of the service this replaces.
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if !a.HasLocalCredential() {
		return result, account.ErrInvalidCredentials
	}
	if !s.passwordHasher.ValidatePassword(input.Password, a.PasswordHash.Value) {
		return result, account.ErrInvalidCredentials
	}

	sessionToken, err := s.sessionIssuer.Issue(a.ID, a.Role)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token.",
			logging.Entry("accountId", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Account successfully authenticated, session token issued.",
		logging.Entry("accountId", a.ID),
	)
	return Result{Token: sessionToken}, nil
}
