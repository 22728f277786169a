package consumers

import (
	"context"

	"authms/internal/app/deps"
	"authms/internal/app/services"
	dl "authms/internal/core/domain/logging"
	"authms/internal/rabbitmq/consumers/commands"
)

func initCommandsConsumer(deps *deps.Deps, s *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqCommandQueue
	if _, err := rabbitmqChannel.DeclareDurableQueue(queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	commandsConsumer := commands.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		commands.Services{
			Register:        s.Register,
			LogIn:           s.LogIn,
			ActivateAccount: s.ActivateAccount,
			ForgotPassword:  s.ForgotPassword,
			ResetPassword:   s.ResetPassword,
			GetProfile:      s.GetProfile,
			UpdateProfile:   s.UpdateProfile,
		},
		deps.Config.IsTestMode,
	)
	if err := commandsConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownCommandsConsumer := initCommandsConsumer(deps, services)

	return func() {
		shutdownCommandsConsumer()
	}
}
