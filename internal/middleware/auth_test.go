package middleware

import (
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret-for-middleware-tests"

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     testSecret,
			ExpireTime: time.Hour,
		},
	}
}

func testToken(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{
		Name:  "test",
		Email: "test@example.com",
		Role:  role,
	}
	user.ID = 42
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func newTestRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, model.Student))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuthMiddlewareTokenFromQuery(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+testToken(t, model.Student), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareBadSecret(t *testing.T) {
	router := newTestRouter(testConfig())

	user := &model.User{Role: model.Student}
	user.ID = 7
	token, err := util.GenerateJWT(user, "a-different-secret-entirely", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     model.UserRole
		required []model.UserRole
		want     int
	}{
		{"professor allowed", model.Professor, []model.UserRole{model.Professor}, http.StatusOK},
		{"student rejected", model.Student, []model.UserRole{model.Professor}, http.StatusForbidden},
		{"admin bypasses role check", model.Admin, []model.UserRole{model.Professor}, http.StatusOK},
		{"student allowed", model.Student, []model.UserRole{model.Student, model.Professor}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(testConfig(), RoleMiddleware(tt.required...))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+testToken(t, tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestTryAuthMiddlewareAllowsGuests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/optional", TryAuthMiddleware(testConfig()), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": claims != nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("guest request status = %d, want %d", w.Code, http.StatusOK)
	}
}
