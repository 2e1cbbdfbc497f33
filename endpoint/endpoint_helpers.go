package endpoint

import (
	"fmt"

	"github.com/carepulse/carepulse-api/middleware"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bindJSONOrRespond binds the request body into dst, responding with 400 on
// failure. Returns false when the caller should stop.
func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

// getDBOrRespond fetches the request-scoped DB handle, responding with 500
// when the database middleware did not run.
func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

// getAccountIDOrRespond fetches the authenticated account id, responding with
// 401 when the auth middleware did not run.
func getAccountIDOrRespond(c *gin.Context) (uint, bool) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok || accountID == 0 {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "User not authenticated",
			Err: fmt.Errorf("account id not found in context"),
		})
		return 0, false
	}
	return accountID, true
}

// tokenUserResponse is the {token, user} payload returned by every register
// and login operation.
type tokenUserResponse struct {
	Token string                 `json:"token"`
	User  map[string]interface{} `json:"user"`
}
