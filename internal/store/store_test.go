package store

import (
	"context"
	"testing"

	"easy_pay/internal/config"
	"easy_pay/internal/db"
	"easy_pay/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newUser(nid, number, email, role, balance string) *domain.User {
	return &domain.User{
		Name:      number,
		NID:       nid,
		Number:    number,
		Email:     email,
		PinDigest: "digest",
		Role:      role,
		Balance:   decimal.RequireFromString(balance),
	}
}

func seedUsers(t *testing.T, users *Users, list ...*domain.User) {
	t.Helper()
	for _, u := range list {
		require.NoError(t, users.Register(context.Background(), u))
	}
}
