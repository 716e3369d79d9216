package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/pokedle-game/pokedle_api/shared"
	log "github.com/sirupsen/logrus"
)

// RateLimitService enforces fixed-window limits per device (falling back to
// client IP) through redis. Redis outages fail open.
type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService
	configs  map[string]rateLimitConfig
}

type rateLimitConfig struct {
	MaxRequests int
	WindowSize  time.Duration
	BlockTime   time.Duration
	Description string
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = map[string]rateLimitConfig{
		// New game creation - prevent target re-roll scanning
		"new_game": {
			MaxRequests: 10,
			WindowSize:  time.Minute,
			BlockTime:   time.Minute * 5,
			Description: "New game creation rate limit",
		},

		// Guess submission - prevent brute forcing the catalog
		"guess": {
			MaxRequests: 30,
			WindowSize:  time.Minute,
			BlockTime:   time.Minute * 5,
			Description: "Guess submission rate limit",
		},
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Handle returns the limiter middleware for one endpoint type.
func (svc *RateLimitService) Handle(endpointType string) fiber.Handler {
	cfg, ok := svc.configs[endpointType]
	if !ok {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		identity := c.Get(shared.HeaderDeviceID)
		if identity == "" {
			identity = c.IP()
		}

		ctx := context.Background()
		blockKey := fmt.Sprintf("ratelimit:block:%s:%s", endpointType, identity)
		countKey := fmt.Sprintf("ratelimit:count:%s:%s", endpointType, identity)

		blocked, err := svc.redisSvc.Exists(ctx, blockKey)
		if err != nil {
			log.WithError(err).Warn("Rate limit check failed, allowing request")
			return c.Next()
		}
		if blocked {
			return shared.NewTooManyRequestsError(
				fmt.Errorf("%s blocked for %s", endpointType, identity),
				"Too many requests, try again later",
			)
		}

		count, err := svc.redisSvc.Increment(ctx, countKey)
		if err != nil {
			log.WithError(err).Warn("Rate limit increment failed, allowing request")
			return c.Next()
		}
		if count == 1 {
			if err := svc.redisSvc.Expire(ctx, countKey, cfg.WindowSize); err != nil {
				log.WithError(err).Warn("Failed to set rate limit window")
			}
		}

		if count > int64(cfg.MaxRequests) {
			if err := svc.redisSvc.Set(ctx, blockKey, "1", cfg.BlockTime); err != nil {
				log.WithError(err).Warn("Failed to set rate limit block")
			}
			log.WithFields(log.Fields{
				"endpoint": endpointType,
				"identity": identity,
				"count":    count,
			}).Warn("Rate limit exceeded")
			return shared.NewTooManyRequestsError(
				fmt.Errorf("%d requests in window for %s", count, endpointType),
				"Too many requests, try again later",
			)
		}

		return c.Next()
	}
}
