package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"authms/internal/core/domain/account"
	"authms/internal/core/domain/common"
	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	"authms/internal/core/domain/ratelimiter"
	"authms/internal/core/services"
	activateaccount "authms/internal/core/services/activate_account"
	forgotpassword "authms/internal/core/services/forgot_password"
	getprofile "authms/internal/core/services/get_profile"
	login "authms/internal/core/services/log_in"
	"authms/internal/core/services/register"
	resetpassword "authms/internal/core/services/reset_password"
	updateprofile "authms/internal/core/services/update_profile"
	"authms/internal/rabbitmq"
	"authms/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

var errBadPayload = errors.New("bad command payload")

// Services groups the use cases reachable over the command queue.
type Services struct {
	Register        services.Service[register.Input, register.Result]
	LogIn           services.Service[login.Input, login.Result]
	ActivateAccount services.Service[activateaccount.Input, activateaccount.Result]
	ForgotPassword  services.Service[forgotpassword.Input, forgotpassword.Result]
	ResetPassword   services.Service[resetpassword.Input, resetpassword.Result]
	GetProfile      services.Service[getprofile.Input, getprofile.Result]
	UpdateProfile   services.Service[updateprofile.Input, updateprofile.Result]
}

type Consumer struct {
	log              logging.Logger
	channel          *rabbitmq.Channel
	queue            string
	services         Services
	exposeResetToken bool
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	services Services,
	exposeResetToken bool,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if services.Register == nil ||
		services.LogIn == nil ||
		services.ActivateAccount == nil ||
		services.ForgotPassword == nil ||
		services.ResetPassword == nil ||
		services.GetProfile == nil ||
		services.UpdateProfile == nil {
		panic(e.NewNilArgumentError("services"))
	}

	return &Consumer{
		log:              log,
		channel:          channel,
		queue:            queue,
		services:         services,
		exposeResetToken: exposeResetToken,
	}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(delivery)
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) handle(delivery amqp091.Delivery) {
	ctx := context.Background()

	cmd := &schema.Command{}
	if err := cmd.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal command envelope.",
			logging.Entry("err", err),
			logging.Entry("body", string(delivery.Body)),
		)
		return
	}

	c.log.Info(ctx, "Got command.", logging.Entry("cmd", cmd.Pattern.Cmd), logging.Entry("id", cmd.ID))

	reply, err := c.dispatch(ctx, cmd)
	if err != nil {
		c.reply(ctx, delivery, c.errorReply(ctx, cmd, err))
		return
	}
	c.reply(ctx, delivery, reply)
}

func (c *Consumer) dispatch(ctx context.Context, cmd *schema.Command) (interface{}, error) {
	switch cmd.Pattern.Cmd {
	case schema.CmdCreateNewUser:
		return c.createNewUser(ctx, cmd.Data)
	case schema.CmdLogin:
		return c.logIn(ctx, cmd.Data)
	case schema.CmdAccountActivation:
		return c.activateAccount(ctx, cmd.Data)
	case schema.CmdForgotPassword:
		return c.forgotPassword(ctx, cmd.Data)
	case schema.CmdResetPassword:
		return c.resetPassword(ctx, cmd.Data)
	case schema.CmdGetProfile:
		return c.getProfile(ctx, cmd.Data)
	case schema.CmdUpdateProfile:
		return c.updateProfile(ctx, cmd.Data)
	}
	return nil, fmt.Errorf("%w: unknown command %q", errBadPayload, cmd.Pattern.Cmd)
}

func (c *Consumer) createNewUser(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.CreateNewUserData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}

	input := register.Input{Email: common.NewEmail(payload.Email)}
	if payload.FirstName != nil {
		input.FirstName = common.NewOptional(*payload.FirstName, true)
	}
	if payload.LastName != nil {
		input.LastName = common.NewOptional(*payload.LastName, true)
	}
	if payload.Password != nil {
		input.Password = common.NewOptional(account.RawPassword(*payload.Password), true)
	}

	result, err := c.services.Register.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	return schema.NewAccountReply(result.Account), nil
}

func (c *Consumer) logIn(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.LoginData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}

	result, err := c.services.LogIn.Run(ctx, login.Input{
		Email:    common.NewEmail(payload.Email),
		Password: account.RawPassword(payload.Password),
	})
	if err != nil {
		return nil, err
	}
	return schema.LoginReply{Token: string(result.Token)}, nil
}

func (c *Consumer) activateAccount(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.AccountActivationData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	accountID, err := account.ParseID(payload.AccountID)
	if err != nil {
		// A mangled id means the link cannot point at any account.
		return schema.AccountActivationReply{AccountExists: false}, nil
	}

	result, err := c.services.ActivateAccount.Run(ctx, activateaccount.Input{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	return schema.AccountActivationReply{AccountExists: result.AccountExists}, nil
}

func (c *Consumer) forgotPassword(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.ForgotPasswordData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}

	result, err := c.services.ForgotPassword.Run(ctx, forgotpassword.Input{Email: common.NewEmail(payload.Email)})
	if err != nil {
		return nil, err
	}

	reply := schema.ForgotPasswordReply{}
	if c.exposeResetToken {
		token := string(result.Token)
		reply.Token = &token
	}
	return reply, nil
}

func (c *Consumer) resetPassword(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.ResetPasswordData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}

	_, err := c.services.ResetPassword.Run(ctx, resetpassword.Input{
		Token:           account.ResetToken(payload.Token),
		NewPassword:     account.RawPassword(payload.NewPassword),
		ConfirmPassword: account.RawPassword(payload.ConfirmPassword),
	})
	if err != nil {
		return nil, err
	}
	return schema.ResetPasswordReply{}, nil
}

func (c *Consumer) getProfile(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.GetProfileData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	accountID, err := account.ParseID(payload.AccountID)
	if err != nil {
		return nil, account.ErrAccountDoesNotExist
	}

	result, err := c.services.GetProfile.Run(ctx, getprofile.Input{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	return schema.NewAccountReply(result.Account), nil
}

func (c *Consumer) updateProfile(ctx context.Context, data json.RawMessage) (interface{}, error) {
	payload := schema.UpdateProfileData{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	accountID, err := account.ParseID(payload.AccountID)
	if err != nil {
		return nil, account.ErrAccountDoesNotExist
	}

	input := updateprofile.Input{AccountID: accountID}
	if payload.FirstName != nil {
		input.DoFirstNameUpdate = true
		input.FirstName = common.NewOptional(*payload.FirstName, true)
	}
	if payload.LastName != nil {
		input.DoLastNameUpdate = true
		input.LastName = common.NewOptional(*payload.LastName, true)
	}
	if payload.Avatar != nil {
		input.DoAvatarUpdate = true
		input.Avatar = *payload.Avatar
	}

	result, err := c.services.UpdateProfile.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	return schema.NewAccountReply(result.Account), nil
}

func (c *Consumer) errorReply(ctx context.Context, cmd *schema.Command, err error) schema.ErrorReply {
	switch {
	case errors.Is(err, account.ErrEmailAlreadyExists):
		return schema.ErrorReply{Message: "Account with this email already exists.", Status: http.StatusConflict}
	case errors.Is(err, account.ErrAccountDoesNotExist):
		return schema.ErrorReply{Message: "Account does not exist.", Status: http.StatusNotFound}
	case errors.Is(err, account.ErrInvalidCredentials):
		return schema.ErrorReply{Message: "Invalid credentials.", Status: http.StatusUnauthorized}
	case errors.Is(err, account.ErrInvalidResetToken):
		return schema.ErrorReply{Message: "Invalid password reset token.", Status: http.StatusBadRequest}
	case errors.Is(err, account.ErrResetTokenExpired):
		return schema.ErrorReply{Message: "Password reset token has expired.", Status: http.StatusBadRequest}
	case errors.Is(err, account.ErrPasswordMismatch):
		return schema.ErrorReply{Message: "Password confirmation does not match.", Status: http.StatusBadRequest}
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		return schema.ErrorReply{Message: "Too many requests.", Status: http.StatusTooManyRequests}
	case errors.Is(err, errBadPayload):
		return schema.ErrorReply{Message: err.Error(), Status: http.StatusBadRequest}
	}

	c.log.Error(
		ctx,
		"Command failed with an unexpected error.",
		logging.Entry("cmd", cmd.Pattern.Cmd),
		logging.Entry("id", cmd.ID),
		logging.Entry("err", err),
	)
	return schema.ErrorReply{Message: "Internal server error.", Status: http.StatusInternalServerError}
}

func (c *Consumer) reply(ctx context.Context, delivery amqp091.Delivery, payload interface{}) {
	if delivery.ReplyTo == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error(ctx, c.log, err)
		return
	}

	err = c.channel.PublishWithContext(ctx, "", delivery.ReplyTo, false, false, amqp091.Publishing{
		ContentType:   "application/json",
		CorrelationId: delivery.CorrelationId,
		Body:          body,
	})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not publish AMQP reply.",
			logging.Entry("replyTo", delivery.ReplyTo),
			logging.Entry("err", err),
		)
	}
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
