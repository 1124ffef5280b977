package ratelimit

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/errors"
)

// Limit describes one limiter: at most Max requests per Window for each client.
type Limit struct {
	Name    string
	Max     int
	Window  time.Duration
	Message string
}

// NewStore returns a redis-backed store when client is set, otherwise an
// in-process token bucket refilling Max tokens per Window.
func NewStore(client redis.UniversalClient, limit Limit, logger *zap.Logger) middleware.RateLimiterStore {
	if client != nil {
		return NewRedisStore(client, "ratelimit:"+limit.Name, limit.Max, limit.Window, logger)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit.Max) / limit.Window.Seconds()),
		Burst:     limit.Max,
		ExpiresIn: limit.Window,
	})
}

// Middleware limits requests per client IP and answers denials with 429 and
// the standard error body.
func Middleware(store middleware.RateLimiterStore, limit Limit, logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.NewAppError(apperrors.ErrInvalidArgument, "Unable to identify client", err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("Rate limit exceeded",
				zap.String("limiter", limit.Name),
				zap.String("client", identifier),
				zap.String("path", c.Request().URL.Path))
			return apperrors.NewAppError(apperrors.ErrResourceExhausted, limit.Message, err)
		},
	})
}
