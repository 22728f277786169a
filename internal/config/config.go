package config

import (
	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Secret     string `env:"SECRET,required"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	RabbitmqURL          string `env:"RABBITMQ_URL,required"`
	RabbitmqCommandQueue string `env:"RABBITMQ_COMMAND_QUEUE" envDefault:"auth_microservice"`

	Port           int      `env:"PORT" envDefault:"9090"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// BaseURL is the public address of the frontend, activation and password
	// reset links point there.
	BaseURL string `env:"BASE_URL,required"`

	BcryptHasherCost                int `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	SessionTokenTTLHours            int `env:"SESSION_TOKEN_TTL_HOURS" envDefault:"24"`
	PasswordResetValidDurationHours int `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"1"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER,required"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
