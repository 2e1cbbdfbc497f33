package middleware

import (
	"fmt"
	"strings"

	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
)

// RequireAuth validates the Authorization bearer token and stores the
// account id and role in the gin context. Missing, malformed, or expired
// tokens abort with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Authorization token not provided",
				Err: fmt.Errorf("missing bearer token"),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Authorization header must use the Bearer scheme",
				Err: fmt.Errorf("malformed authorization header"),
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Authorization token not provided",
				Err: fmt.Errorf("malformed authorization header"),
			})
			c.Abort()
			return
		}

		claims, err := util.ParseToken(tokenString)
		if err != nil {
			util.LogUnauthorizedAccess("", "", c.ClientIP(), c.Request.URL.Path, "invalid or expired token")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired token",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated role matches.
// Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, ok := GetRole(c)
		if !ok || callerRole != role {
			accountID, _ := GetAccountID(c)
			util.LogUnauthorizedAccess(fmt.Sprintf("%s:%d", callerRole, accountID), "", c.ClientIP(), c.Request.URL.Path, fmt.Sprintf("requires role %s", role))
			util.CallErrorForbidden(c, util.APIErrorParams{
				Msg: "You do not have access to this resource",
				Err: fmt.Errorf("requires %s role", role),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
