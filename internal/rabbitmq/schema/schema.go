package schema

import (
	"encoding/json"
	"time"

	"authms/internal/core/domain/account"
)

// Command names the bus understands. The values are part of the wire
// contract shared with the API gateway.
const (
	CmdCreateNewUser     = "CREATE_NEW_USER"
	CmdLogin             = "LOGIN"
	CmdAccountActivation = "ACCOUNT_ACTIVATION"
	CmdForgotPassword    = "FORGOT_PASSWORD"
	CmdResetPassword     = "RESET_PASSWORD"
	CmdGetProfile        = "GET_PROFILE"
	CmdUpdateProfile     = "UPDATE_PROFILE"
)

type Pattern struct {
	Cmd string `json:"cmd"`
}

// Command is the envelope every message on the command queue uses.
// Data stays raw until the pattern tells us which payload to expect.
type Command struct {
	Pattern Pattern         `json:"pattern"`
	Data    json.RawMessage `json:"data"`
	ID      string          `json:"id"`
}

func (c *Command) Unmarshal(data []byte) error {
	return json.Unmarshal(data, c)
}

// ErrorReply is the uniform failure shape, a human-readable message plus an
// HTTP-ish status code.
type ErrorReply struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type CreateNewUserData struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"email"`
	Password  *string `json:"password"`
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountActivationData struct {
	AccountID string `json:"accountId"`
}

type ForgotPasswordData struct {
	Email string `json:"email"`
}

type ResetPasswordData struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type GetProfileData struct {
	AccountID string `json:"accountId"`
}

type UpdateProfileData struct {
	AccountID string  `json:"accountId"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

// AccountReply is an account as it goes out on the wire. The password hash
// never leaves the service.
type AccountReply struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  *string   `json:"firstName"`
	LastName   *string   `json:"lastName"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewAccountReply(a account.Account) AccountReply {
	reply := AccountReply{
		ID:         a.ID.String(),
		Email:      string(a.Email),
		Role:       a.Role.String(),
		IsVerified: a.IsVerified,
		Avatar:     a.Avatar,
		CreatedAt:  a.CreatedAt,
	}
	if a.FirstName.IsPresent {
		v := a.FirstName.Value
		reply.FirstName = &v
	}
	if a.LastName.IsPresent {
		v := a.LastName.Value
		reply.LastName = &v
	}
	return reply
}

type LoginReply struct {
	Token string `json:"token"`
}

type AccountActivationReply struct {
	AccountExists bool `json:"accountExists"`
}

type ForgotPasswordReply struct {
	// Token is only populated in test mode, real deployments deliver it by
	// email exclusively.
	Token *string `json:"token,omitempty"`
}

type ResetPasswordReply struct{}
