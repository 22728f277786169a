package deps

import (
	"context"
	"time"

	"authms/internal/config"
	"authms/internal/core/domain/account"
	dl "authms/internal/core/domain/logging"
	"authms/internal/core/domain/notification"
	drl "authms/internal/core/domain/ratelimiter"
	dbaccount "authms/internal/db/account"
	"authms/internal/implementations/email"
	"authms/internal/implementations/logging"
	passwordhasher "authms/internal/implementations/password_hasher"
	ratelimiter "authms/internal/implementations/rate_limiter"
	resettokengenerator "authms/internal/implementations/reset_token_generator"
	"authms/internal/implementations/session"
	"authms/internal/rabbitmq"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	AccountRepository    account.AccountRepository
	ResetTokenRepository account.PasswordResetTokenRepository

	RateLimiter drl.RateLimiter

	PasswordHasher      account.PasswordHasher
	ResetTokenGenerator account.ResetTokenGenerator
	SessionIssuer       account.SessionIssuer
	Dispatcher          notification.Dispatcher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.AccountRepository = dbaccount.NewPgxRepository(deps.DB)
	deps.ResetTokenRepository = dbaccount.NewPgxResetTokenRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.ResetTokenGenerator = resettokengenerator.NewGenerator()
	deps.SessionIssuer = session.NewJWTIssuer(
		deps.Config.Secret,
		time.Duration(deps.Config.SessionTokenTTLHours)*time.Hour,
		deps.Now,
	)
	deps.Dispatcher = email.NewSesDispatcher(deps.AwsConfig)

	return deps, func() {
		closeRabbitmqConn()
		closeRedisClient()
		closePgxPool()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}
