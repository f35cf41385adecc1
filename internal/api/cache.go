package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Key formatting
	"net/http" // HTTP status codes
	"time"     // Cache lifetimes

	"easy_pay/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache key layout
const (
	adminUsersPrefix  = "admin:users:"
	adminAgentsPrefix = "admin:agents:"
	adminTxsPrefix    = "admin:txs:"
	totalBalanceKey   = "admin:total"
)

func userKey(email string) string {
	return "user:email:" + email
}

func numberTxsPrefix(number string) string {
	return "txs:" + number + ":"
}

func pageKey(prefix, scope string, page, pageSize int) string {
	return fmt.Sprintf("%s%s:page=%d:size=%d", prefix, scope, page, pageSize)
}

// invalidate drops exact keys and every key under the given prefixes. Failures are logged, not returned:
// entries expire on their own TTL.
func invalidate(ctx context.Context, rdb *redis.Client, keys []string, prefixes ...string) {
	if err := utils.DeleteCache(ctx, rdb, keys...); err != nil {
		logrus.WithError(err).Warn("Cache invalidation failed")
	}
	for _, prefix := range prefixes {
		if err := utils.DeleteCachePattern(ctx, rdb, prefix+"*"); err != nil {
			logrus.WithError(err).WithField("prefix", prefix).Warn("Cache invalidation failed")
		}
	}
}

// pageLoader fetches one page of items and the total row count
type pageLoader func(ctx context.Context, page, pageSize int) (items any, total int64, err error)

// servePage answers a paginated list from cache when possible, otherwise loads, caches and returns it.
// field names the list in the response body.
func servePage(c *gin.Context, rdb *redis.Client, ttl time.Duration, cacheKey func(page, pageSize int) string, field string, load pageLoader) {
	ctx := c.Request.Context()
	page, pageSize := pageParams(c)
	key := cacheKey(page, pageSize)

	var cached map[string]any
	// If cached data found, return it
	if found, err := utils.GetCache(ctx, rdb, key, &cached); err == nil && found {
		cached["cached"] = true // Indicate response is from cache
		c.JSON(http.StatusOK, cached)
		return
	} else if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
	}

	items, total, err := load(ctx, page, pageSize)
	if err != nil {
		storeFailure(c, err, "Failed to fetch "+field)
		return
	}
	respData := gin.H{
		field:         items,                       // Requested page
		"page":        page,                        // Current page
		"page_size":   pageSize,                    // Page size
		"total":       total,                       // Total number of rows
		"total_pages": totalPages(total, pageSize), // Total pages
		"cached":      false,                       // Indicate response is not from cache
	}
	// Cache the response for future requests
	if err := utils.SetCache(ctx, rdb, key, respData, ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	c.JSON(http.StatusOK, respData)
}
