package app

import (
	"fmt"
	"net/http"

	"authms/internal/app/deps"
	"authms/internal/app/services"
	"authms/internal/http/handlers/auth"
	activateaccount "authms/internal/http/handlers/auth/activate_account"
	forgotpassword "authms/internal/http/handlers/auth/forgot_password"
	login "authms/internal/http/handlers/auth/log_in"
	"authms/internal/http/handlers/auth/register"
	resetpassword "authms/internal/http/handlers/auth/reset_password"
	"authms/internal/http/handlers/profile/me"
	updateprofile "authms/internal/http/handlers/profile/update_profile"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/register", register.New(s.Register))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/activate/{accountID}", activateaccount.New(s.ActivateAccount))
	authRouter.Method(http.MethodPost, "/password_reset/token", forgotpassword.New(s.ForgotPassword, isTestMode))
	authRouter.Method(http.MethodPost, "/password_reset", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.Authenticate(deps.SessionIssuer))
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetProfile))
	profileRouter.Method(http.MethodPatch, "/me", updateprofile.New(s.UpdateProfile))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
