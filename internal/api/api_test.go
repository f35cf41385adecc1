package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"easy_pay/internal/config"
	"easy_pay/internal/db"
	"easy_pay/internal/domain"
	"easy_pay/internal/ledger"
	"easy_pay/internal/middleware"
	"easy_pay/internal/store"
	"easy_pay/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecret = "test-secret"
	testPin    = "12345"
)

type testServer struct {
	db     *gorm.DB
	cfg    *config.Config
	users  *store.Users
	router *gin.Engine
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	return setupServerWithCache(t, nil)
}

// setupServerWithCache builds the router over rdb; nil disables caching
func setupServerWithCache(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DBDriver:          "sqlite",
		DBPath:            ":memory:",
		JWTSecret:         testSecret,
		TokenTTL:          time.Hour,
		CacheTTL:          time.Minute,
		BcryptCost:        bcrypt.MinCost,
		NotificationLimit: 50,
	}
	gdb, err := db.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	users := store.NewUsers(gdb, cfg.NotificationLimit)
	txs := store.NewTransactions(gdb)
	r, err := NewRouter(Deps{
		Config: cfg,
		Users:  users,
		Txs:    txs,
		Engine: ledger.NewEngine(gdb, users, txs),
		Redis:  rdb,
	})
	require.NoError(t, err)
	return &testServer{db: gdb, cfg: cfg, users: users, router: r}
}

// addUser stores a user directly, bypassing registration rules so admins can be created
func (s *testServer) addUser(t *testing.T, number, role, balance string) *domain.User {
	t.Helper()
	digest, err := utils.HashPin(testPin, bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{
		Name:      "user " + number,
		NID:       "nid-" + number,
		Number:    number,
		Email:     number + "@easypay.test",
		PinDigest: digest,
		Role:      role,
		Balance:   decimal.RequireFromString(balance),
	}
	if role == domain.RoleAgent {
		u.AgentStatus = domain.AgentPending
	}
	require.NoError(t, s.users.Register(context.Background(), u))
	return u
}

func (s *testServer) tokenFor(t *testing.T, u *domain.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(map[string]any{"email": u.Email, middleware.UserIDClaim: u.ID}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) balance(t *testing.T, number string) decimal.Decimal {
	t.Helper()
	u, err := s.users.FindByNumber(context.Background(), number)
	require.NoError(t, err)
	return u.Balance
}

// do sends body as JSON (raw when it is a string) with an optional bearer token
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireEqualDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
