package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "authms/internal/core/domain/errors"
	"authms/internal/core/domain/logging"
	domain "authms/internal/core/domain/ratelimiter"

	"github.com/go-redis/redis/v9"
)

type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit domain.Limit) domain.Result {
	var d time.Duration
	var k string

	switch limit.Interval {
	case domain.Hour:
		k = fmt.Sprintf("%s::h%d", key, r.now().Hour())
		d = time.Hour
	case domain.Minute:
		k = fmt.Sprintf("%s::m%d", key, r.now().Minute())
		d = time.Minute
	default:
		panic("invalid rate limiting interval")
	}

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, d)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return domain.NotAllowed()
	}
	if err != nil {
		// Rate limiting must not take the whole service down with it.
		r.log.Error(ctx, "Could not check rate limit due to Redis client error.", logging.Entry("err", err))
		return domain.Allowed()
	}
	intCmd := cmds[0].(*redis.IntCmd)
	if intCmd.Val() > int64(limit.Value) {
		return domain.NotAllowed()
	}
	return domain.Allowed()
}
