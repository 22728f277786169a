package ratelimiting

import (
	"context"
	"errors"
	"testing"

	"authms/internal/core/domain/logging"
	ratelimiter "authms/internal/core/domain/ratelimiter"
)

type input struct{}

func (i input) GetRateLimitKey() string {
	return "test"
}

type echoService struct {
	called int
}

func (s *echoService) Run(ctx context.Context, i input) (string, error) {
	s.called++
	return "ok", nil
}

func TestAllowed(t *testing.T) {
	inner := &echoService{}
	service := WithRateLimiting[input, string](
		logging.NewFakeLogger(),
		ratelimiter.NewFakeRateLimiter(true),
		ratelimiter.Limit{Interval: ratelimiter.Hour, Value: 10},
		inner,
	)

	result, err := service.Run(context.Background(), input{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("unexpected result: %v", result)
	}
	if inner.called != 1 {
		t.Fatalf("inner service called %d times", inner.called)
	}
}

func TestNotAllowed(t *testing.T) {
	inner := &echoService{}
	service := WithRateLimiting[input, string](
		logging.NewFakeLogger(),
		ratelimiter.NewFakeRateLimiter(false),
		ratelimiter.Limit{Interval: ratelimiter.Hour, Value: 10},
		inner,
	)

	_, err := service.Run(context.Background(), input{})
	if !errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		t.Fatalf("expected rate limit error, got: %v", err)
	}
	if inner.called != 0 {
		t.Fatalf("inner service called %d times", inner.called)
	}
}
