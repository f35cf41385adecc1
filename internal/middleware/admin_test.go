package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easy_pay/internal/config"
	"easy_pay/internal/db"
	"easy_pay/internal/domain"
	"easy_pay/internal/store"
	"easy_pay/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnlyMiddleware(t *testing.T) {
	gdb, err := db.Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	users := store.NewUsers(gdb, 0)
	admin := &domain.User{NID: "1", Number: "01700000000", Email: "admin@mail.test", PinDigest: "x", Role: domain.RoleAdmin}
	customer := &domain.User{NID: "2", Number: "01711111111", Email: "user@mail.test", PinDigest: "x", Role: domain.RoleCustomer}
	for _, u := range []*domain.User{admin, customer} {
		require.NoError(t, users.Register(context.Background(), u))
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(testSecret), AdminOnlyMiddleware(users), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		claims map[string]any
		want   int
	}{
		{"admin", map[string]any{"email": admin.Email, UserIDClaim: admin.ID}, http.StatusNoContent},
		{"customer", map[string]any{"email": customer.Email, UserIDClaim: customer.ID}, http.StatusForbidden},
		{"unknown id", map[string]any{UserIDClaim: 9999}, http.StatusForbidden},
		{"admin email without id", map[string]any{"email": admin.Email}, http.StatusForbidden},
		{"id as string", map[string]any{UserIDClaim: "1"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := utils.GenerateJWT(tt.claims, testSecret, time.Hour)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
