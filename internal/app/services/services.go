package services

import (
	"time"

	"authms/internal/app/deps"
	drl "authms/internal/core/domain/ratelimiter"
	"authms/internal/core/services"
	activateaccount "authms/internal/core/services/activate_account"
	forgotpassword "authms/internal/core/services/forgot_password"
	getprofile "authms/internal/core/services/get_profile"
	login "authms/internal/core/services/log_in"
	ratelimiting "authms/internal/core/services/rate_limiting"
	"authms/internal/core/services/register"
	resetpassword "authms/internal/core/services/reset_password"
	updateprofile "authms/internal/core/services/update_profile"
)

type Services struct {
	Register        services.Service[register.Input, register.Result]
	LogIn           services.Service[login.Input, login.Result]
	ActivateAccount services.Service[activateaccount.Input, activateaccount.Result]
	ForgotPassword  services.Service[forgotpassword.Input, forgotpassword.Result]
	ResetPassword   services.Service[resetpassword.Input, resetpassword.Result]
	GetProfile      services.Service[getprofile.Input, getprofile.Result]
	UpdateProfile   services.Service[updateprofile.Input, updateprofile.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.Register = register.NewWithActivationLinkSending(
		deps.Logger,
		deps.Dispatcher,
		deps.Config.BaseURL,
		deps.Config.AwsEmailSender,
		register.New(
			deps.Logger,
			deps.AccountRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.AccountRepository,
			deps.PasswordHasher,
			deps.SessionIssuer,
		),
	)
	s.ActivateAccount = activateaccount.New(
		deps.Logger,
		deps.AccountRepository,
	)
	s.ForgotPassword = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		forgotpassword.NewWithResetLinkSending(
			deps.Logger,
			deps.Dispatcher,
			deps.Config.BaseURL,
			deps.Config.AwsEmailSender,
			forgotpassword.New(
				deps.Logger,
				deps.AccountRepository,
				deps.ResetTokenRepository,
				deps.ResetTokenGenerator,
				time.Duration(deps.Config.PasswordResetValidDurationHours)*time.Hour,
				deps.Now,
			),
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.AccountRepository,
		deps.ResetTokenRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetProfile = getprofile.New(
		deps.Logger,
		deps.AccountRepository,
	)
	s.UpdateProfile = updateprofile.New(
		deps.Logger,
		deps.AccountRepository,
	)

	return s
}
