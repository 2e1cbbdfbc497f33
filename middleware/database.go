package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the middleware in this package.
const (
	DBKey        = "db"
	AccountIDKey = "account_id"
	RoleKey      = "role"
)

// DatabaseMiddleware injects the gorm DB handle into the request context so
// handlers never open their own connections.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped DB handle, or nil when the middleware did
// not run.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(DBKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetAccountID returns the authenticated account's record ID.
func GetAccountID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(AccountIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetRole returns the authenticated account's role ("patient" or "doctor").
func GetRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(RoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
