package api

import (
	"context"  // Context for store calls
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Cache lifetimes

	"easy_pay/internal/domain" // Importing domain models
	"easy_pay/internal/store"  // Identity and ledger stores
	"easy_pay/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// UserDataHandler returns a profile with balance and notification feed
func UserDataHandler(users *store.Users, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		email := strings.ToLower(c.Param("email"))
		key := userKey(email)

		var cached domain.User
		if found, err := utils.GetCache(ctx, rdb, key, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		user, err := users.FindByEmail(ctx, email)
		if errors.Is(err, domain.ErrUserNotFound) {
			reply(c, http.StatusNotFound, false, "User not found")
			return
		}
		if err != nil {
			storeFailure(c, err, "Failed to fetch user")
			return
		}
		if err := utils.SetCache(ctx, rdb, key, user, ttl); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
		}
		c.JSON(http.StatusOK, user)
	}
}

// UserTransactionsHandler lists the ledger entries of :number, newest first.
// EitherSide matches sent and received entries, SentBy only sent ones.
func UserTransactionsHandler(txs *store.Transactions, direction store.Direction, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	scope := "either"
	if direction == store.SentBy {
		scope = "sent"
	}
	return func(c *gin.Context) {
		number := c.Param("number")
		servePage(c, rdb, ttl, func(page, size int) string {
			return pageKey(numberTxsPrefix(number), scope, page, size)
		}, "transactions", func(ctx context.Context, page, size int) (any, int64, error) {
			return txs.List(ctx, store.TxFilter{Number: number, Direction: direction, Page: page, PageSize: size})
		})
	}
}
