package middleware

import (
	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// TenantIDKey is the gin context key for the resolved tenant id
	TenantIDKey = "tenant_id"

	tenantHeader = "X-Tenant-ID"
)

// Tenant resolves the tenant from the X-Tenant-ID header and stores it on
// the gin and request contexts. A missing or malformed header resolves to
// uuid.Nil rather than aborting: queries then return empty results and
// mutations fail with TENANT_MISSING at the application layer.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := uuid.Nil
		if raw := c.GetHeader(tenantHeader); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				tenantID = parsed
			}
		}

		c.Set(TenantIDKey, tenantID)
		if tenantID != uuid.Nil {
			ctx := logger.WithTenantID(c.Request.Context(), tenantID.String())
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetTenantID returns the tenant resolved for the request, uuid.Nil when
// none was.
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// Actor resolves the acting user from request headers and attaches it to
// the request context for the audit recorder. All fields are best-effort;
// an unidentified actor is recorded with zero values.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := audit.Actor{
			Email:     c.GetHeader("X-User-Email"),
			Name:      c.GetHeader("X-User-Name"),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if userID, err := uuid.Parse(raw); err == nil {
				actor.UserID = &userID
				ctx := logger.WithUserID(c.Request.Context(), userID.String())
				c.Request = c.Request.WithContext(ctx)
			}
		}

		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}
