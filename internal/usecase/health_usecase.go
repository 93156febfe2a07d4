package usecase

import (
	"context"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	relay domain.RelayConfig
}

func NewHealthUsecase(relay domain.RelayConfig) HealthUsecase {
	return &healthUsecase{relay: relay}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":      "ok",
		"email_relay": "configured",
		"rate_limit":  "memory",
	}
	if !u.relay.IsConfigured() {
		status["email_relay"] = "not_configured"
	}
	if redis.Client() != nil {
		status["rate_limit"] = "redis"
		if err := redis.HealthCheck(ctx); err != nil {
			status["rate_limit"] = "redis_unreachable"
		}
	}
	return status
}
