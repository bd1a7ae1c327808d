package rest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	restTypes "github.com/arbiterhq/arbiter/internal/rest/types"
	"github.com/redis/rueidis"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// timeoutMiddleware bounds every request by the configured duration so a
// slow query cannot hold a connection open indefinitely.
func timeoutMiddleware(timeout time.Duration) bunrouter.MiddlewareFunc {
	return func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			ctx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()

			req.Request = req.Request.WithContext(ctx)

			return next(w, req)
		}
	}
}

// ratelimitMiddleware enforces a per-client fixed window cap, counted in
// Redis so the limit holds across server replicas. Redis being down fails
// open, limiting is protection, not a dependency.
func ratelimitMiddleware(client rueidis.Client, perMinute int, logger *zap.Logger) bunrouter.MiddlewareFunc {
	window := time.Minute

	return func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			if client == nil || perMinute <= 0 {
				return next(w, req)
			}

			ip, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				ip = req.RemoteAddr
			}

			key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(window.Seconds()))

			count, err := client.Do(req.Context(), client.B().Incr().Key(key).Build()).AsInt64()
			if err != nil {
				logger.Warn("Rate limit check failed", zap.Error(err))
				return next(w, req)
			}

			if count == 1 {
				if err := client.Do(req.Context(), client.B().Expire().
					Key(key).Seconds(int64(window.Seconds())).Build()).Error(); err != nil {
					logger.Warn("Failed to expire rate limit key", zap.Error(err))
				}
			}

			if count > int64(perMinute) {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int64(window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)

				return bunrouter.JSON(w, restTypes.ErrorResponse{Error: "rate limit exceeded"})
			}

			return next(w, req)
		}
	}
}

// loggingMiddleware records one line per request.
func loggingMiddleware(logger *zap.Logger) bunrouter.MiddlewareFunc {
	return func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			start := time.Now()

			err := next(w, req)

			logger.Debug("Handled request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))

			return err
		}
	}
}
