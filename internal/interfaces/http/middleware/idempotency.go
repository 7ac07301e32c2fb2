package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/infrastructure/logger"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client key
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength caps accepted keys
	MaxIdempotencyKeyLength = 255
)

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	TTL   time.Duration
}

// Idempotency rejects a request whose Idempotency-Key was already seen for
// the same method and route with 409 ERR_DUPLICATE_REQUEST. Requests without
// the header pass through. A store failure lets the request through.
// A request answered with 4xx or 5xx releases its key so a corrected retry
// can reuse it.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput,
				"Idempotency-Key must be at most 255 characters")
			return
		}

		scoped := c.Request.Method + " " + routePattern(c) + " " + key
		isNew, err := cfg.Store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			logger.GetGinLogger(c).Warn("Idempotency store unavailable, processing request",
				zap.String("idempotency_key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !isNew {
			abortWithError(c, http.StatusConflict, dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed")
			return
		}
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			// the client may have gone away; the key must still be freed
			ctx := context.WithoutCancel(c.Request.Context())
			if err := cfg.Store.Release(ctx, scoped); err != nil {
				logger.GetGinLogger(c).Warn("Failed to release idempotency key",
					zap.String("idempotency_key", key),
					zap.Error(err),
				)
			}
		}
	}
}
