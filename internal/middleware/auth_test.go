package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"almacen/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID:   "00000000-0000-0000-0000-000000000001",
		Username: "ana",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", middleware.JWTAuth(testSecret))
	group.GET("/recurso", middleware.RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": middleware.GetClaims(c).Role})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	r := protectedRouter("admin")
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	r := protectedRouter("admin")
	w := doRequest(r, "no-es-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	r := protectedRouter("admin")
	w := doRequest(r, signToken(t, "admin", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllows(t *testing.T) {
	r := protectedRouter("operator", "admin")
	w := doRequest(r, signToken(t, "operator", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleForbids(t *testing.T) {
	r := protectedRouter("admin")
	w := doRequest(r, signToken(t, "operator", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
