package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easy_pay/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": utils.ClaimString(ClaimsFrom(c), "email")})
	})
	return r
}

func signed(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWT(map[string]any{"email": "a@mail.test"}, secret, ttl)
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer", "Bearer " + signed(t, testSecret, time.Hour), "", http.StatusOK},
		{"cookie", "", signed(t, testSecret, time.Hour), http.StatusOK},
		{"header wins over cookie", "Bearer " + signed(t, testSecret, time.Hour), "garbage", http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", "", http.StatusUnauthorized},
		{"malformed", "Bearer not.a.token", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", time.Hour), "", http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, testSecret, -time.Minute), "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"email":"a@mail.test"}`, w.Body.String())
			}
		})
	}
}
