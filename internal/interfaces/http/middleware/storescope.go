package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/interfaces/http/dto"
)

// StoreIDKey is the context key holding the resolved store ID
const StoreIDKey = "store_id"

// ScopeResolver resolves a store identifier (UUID or store code) to the ID of
// an active store.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, identifier string) (uuid.UUID, error)
}

// StoreScope resolves the store scope of each request. The identifier is read
// from the storeId query parameter, falling back to the X-Store-ID header, and
// may be either the store's UUID or its code. Requests without a resolvable
// scope never reach the handler.
func StoreScope(resolver ScopeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.Query("storeId")
		if identifier == "" {
			identifier = c.GetHeader("X-Store-ID")
		}

		storeID, err := resolver.ResolveScope(c.Request.Context(), identifier)
		if err != nil {
			code := dto.ErrCodeInternal
			message := "Failed to resolve store scope"
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				code = domainErr.Code
				message = domainErr.Message
			}
			c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
				dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
			return
		}

		c.Set(StoreIDKey, storeID)
		c.Next()
	}
}

// GetStoreID returns the store ID resolved by the StoreScope middleware
func GetStoreID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(StoreIDKey)
	if !exists {
		return uuid.Nil, false
	}
	storeID, ok := value.(uuid.UUID)
	return storeID, ok
}
