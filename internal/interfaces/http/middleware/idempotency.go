package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client-chosen key for mutating requests
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL is how long a processed key stays recorded
const DefaultIdempotencyTTL = 24 * time.Hour

// Idempotency rejects replays of mutating requests that carry an
// Idempotency-Key header already seen within the TTL. A key is recorded only
// after the handler succeeds: a failed request (validation, not-found,
// conflict) leaves the key free so the client can retry with it. Requests
// without the header pass through untouched; safe methods are never checked.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		processed, err := store.IsProcessed(c.Request.Context(), key)
		if err != nil {
			// The store being down must not take request processing with it
			logger.Warn("idempotency check failed",
				zap.Error(err),
				zap.String("request_id", GetRequestID(c)),
			)
			c.Next()
			return
		}
		if processed {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeDuplicateRequest,
					"A request with this idempotency key was already processed", GetRequestID(c)))
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		if _, err := store.MarkProcessed(c.Request.Context(), key, ttl); err != nil {
			logger.Warn("failed to record idempotency key",
				zap.Error(err),
				zap.String("request_id", GetRequestID(c)),
			)
		}
	}
}
