package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setGinTestMode() {
	gin.SetMode(gin.TestMode)
}

func runRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := runRequest(r, "GET", "/", "")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected Access-Control-Allow-Origin header to be set")
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("expected Access-Control-Allow-Methods header to be set")
	}
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.Use(CORSMiddleware())
	r.OPTIONS("/anything", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := runRequest(r, "OPTIONS", "/anything", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
}

func TestDatabaseMiddlewareAndGetDB(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	// Use a zero-value gorm.DB pointer as a placeholder
	db := &gorm.DB{}
	r.Use(DatabaseMiddleware(db))
	r.GET("/testdb", func(c *gin.Context) {
		if GetDB(c) != db {
			c.AbortWithStatus(500)
			return
		}
		c.Status(200)
	})

	w := runRequest(r, "GET", "/testdb", "")
	if w.Code != 200 {
		t.Fatalf("expected 200 from handler with DB set, got %d", w.Code)
	}
}

func TestGetDB_NotSet(t *testing.T) {
	setGinTestMode()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetDB(c) != nil {
		t.Fatalf("expected nil DB when middleware did not run")
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.Status(200) })

	w := runRequest(r, "GET", "/private", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	setGinTestMode()
	util.SetJWTSecret("middleware-test-secret")
	r := gin.New()
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.Status(200) })

	w := runRequest(r, "GET", "/private", "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestRequireAuth_RejectsNonBearerSchemes(t *testing.T) {
	setGinTestMode()
	util.SetJWTSecret("middleware-test-secret")

	token, err := util.CreateToken(42, util.RolePatient)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	r := gin.New()
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.Status(200) })

	// A valid token without the Bearer scheme must not authenticate.
	for _, header := range []string{token, "Basic " + token, "bearer " + token} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for Authorization %q, got %d", header, w.Code)
		}
	}
}

func TestRequireAuth_ValidTokenSetsContext(t *testing.T) {
	setGinTestMode()
	util.SetJWTSecret("middleware-test-secret")

	token, err := util.CreateToken(42, util.RolePatient)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	r := gin.New()
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		id, ok := GetAccountID(c)
		if !ok || id != 42 {
			t.Errorf("expected account id 42 in context, got %d (ok=%v)", id, ok)
		}
		role, ok := GetRole(c)
		if !ok || role != util.RolePatient {
			t.Errorf("expected patient role in context, got %q (ok=%v)", role, ok)
		}
		c.Status(200)
	})

	w := runRequest(r, "GET", "/private", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}
}

func TestRequireAuth_WrongSecretRejected(t *testing.T) {
	setGinTestMode()
	util.SetJWTSecret("original-secret")
	token, err := util.CreateToken(7, util.RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	util.SetJWTSecret("rotated-secret")
	defer util.SetJWTSecret("original-secret")

	r := gin.New()
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.Status(200) })

	w := runRequest(r, "GET", "/private", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after secret rotation, got %d", w.Code)
	}
}

func TestRequireRole_Mismatch(t *testing.T) {
	setGinTestMode()
	util.SetJWTSecret("middleware-test-secret")
	token, err := util.CreateToken(9, util.RolePatient)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	r := gin.New()
	r.GET("/doctor-only", RequireAuth(), RequireRole(util.RoleDoctor), func(c *gin.Context) { c.Status(200) })

	w := runRequest(r, "GET", "/doctor-only", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for patient hitting doctor route, got %d", w.Code)
	}
}

func TestRequireRole_Match(t *testing.T) {
	setGinTestMode()
	util.SetJWTSecret("middleware-test-secret")
	token, err := util.CreateToken(9, util.RoleDoctor)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	r := gin.New()
	r.GET("/doctor-only", RequireAuth(), RequireRole(util.RoleDoctor), func(c *gin.Context) { c.Status(200) })

	w := runRequest(r, "GET", "/doctor-only", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for doctor hitting doctor route, got %d", w.Code)
	}
}

func TestRequireRole_WithoutAuthContext(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.GET("/doctor-only", RequireRole(util.RoleDoctor), func(c *gin.Context) { c.Status(200) })

	w := runRequest(r, "GET", "/doctor-only", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when auth context missing, got %d", w.Code)
	}
}
