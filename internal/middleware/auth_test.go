package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescrm/internal/authz"
)

func signToken(t *testing.T, key []byte, expiresAt time.Time, role authz.Role) string {
	t.Helper()
	claims := &Claims{
		UserID: 7,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/leads", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("user_id")})
	})
	return r
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/leads", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ExpiryLeeway(t *testing.T) {
	router := protectedRouter()

	// just past expiry, still inside the 2 minute leeway
	token := signToken(t, JWTKey, time.Now().Add(-1*time.Minute), authz.RoleEmployee)
	w := doGet(router, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// beyond the leeway
	token = signToken(t, JWTKey, time.Now().Add(-3*time.Minute), authz.RoleEmployee)
	w = doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsTokenWithoutExpiry(t *testing.T) {
	router := protectedRouter()

	claims := &Claims{UserID: 7, Role: authz.RoleEmployee}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTKey)
	require.NoError(t, err)

	w := doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsBadSignatureAndRole(t *testing.T) {
	router := protectedRouter()

	token := signToken(t, []byte("some-other-key"), time.Now().Add(time.Hour), authz.RoleEmployee)
	w := doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token = signToken(t, JWTKey, time.Now().Add(time.Hour), authz.Role("superuser"))
	w = doGet(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
