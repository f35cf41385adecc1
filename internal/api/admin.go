package api

import (
	"context"  // Context for store calls
	"errors"   // Error inspection
	"io"       // Empty body detection
	"net/http" // HTTP status codes
	"time"     // Cache lifetimes

	"easy_pay/internal/domain" // Importing domain models
	"easy_pay/internal/store"  // Identity and ledger stores
	"easy_pay/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Feed messages used when the admin does not supply one
const (
	defaultAcceptMsg = "Your agent account has been approved"
	defaultRejectMsg = "Your agent request has been rejected"
)

// BlockRequest is the userBlock body
type BlockRequest struct {
	IsBlocked *bool `json:"isBlocked" binding:"required"` // Pointer so false is not treated as missing
}

// DecisionRequest is the agentAccept / agentReject body
type DecisionRequest struct {
	Notification string `json:"notification"` // Message appended to the agent's feed
}

// UserBlockHandler blocks or unblocks a user
func UserBlockHandler(users *store.Users, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req BlockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			reply(c, http.StatusBadRequest, false, "Invalid request")
			return
		}
		user, err := users.SetBlocked(c.Request.Context(), id, *req.IsBlocked)
		if !adminWriteOK(c, err, "Failed to update block state") {
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    id,
			"is_blocked": *req.IsBlocked,
		}).Info("User block state changed")
		invalidateUser(c.Request.Context(), rdb, user)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated", "user": user})
	}
}

// AgentAcceptHandler approves an agent and credits the onboarding bonus
func AgentAcceptHandler(users *store.Users, rdb *redis.Client) gin.HandlerFunc {
	return agentDecisionHandler(users.AgentAccept, defaultAcceptMsg, "Agent approved", rdb)
}

// AgentRejectHandler rejects an agent request
func AgentRejectHandler(users *store.Users, rdb *redis.Client) gin.HandlerFunc {
	return agentDecisionHandler(users.AgentReject, defaultRejectMsg, "Agent rejected", rdb)
}

func agentDecisionHandler(decide func(context.Context, uint, string) (*domain.User, error), fallback, done string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req DecisionRequest
		// An empty body is allowed
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			reply(c, http.StatusBadRequest, false, "Invalid request")
			return
		}
		msg := req.Notification
		if msg == "" {
			msg = fallback
		}
		user, err := decide(c.Request.Context(), id, msg)
		if !adminWriteOK(c, err, "Agent decision failed") {
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":      id,
			"agent_status": user.AgentStatus,
		}).Info(done)
		invalidateUser(c.Request.Context(), rdb, user)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": done, "user": user})
	}
}

// TotalBalanceHandler returns the exact sum of every balance
func TotalBalanceHandler(users *store.Users, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached string
		if found, err := utils.GetCache(ctx, rdb, totalBalanceKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"totalBalance": cached, "cached": true})
			return
		}
		total, err := users.TotalBalance(ctx)
		if err != nil {
			storeFailure(c, err, "Failed to sum balances")
			return
		}
		if err := utils.SetCache(ctx, rdb, totalBalanceKey, total.String(), ttl); err != nil {
			logrus.WithError(err).WithField("key", totalBalanceKey).Warn("Cache write failed")
		}
		c.JSON(http.StatusOK, gin.H{"totalBalance": total.String(), "cached": false})
	}
}

// ListUsersHandler returns users of any role, optionally filtered by ?number=
func ListUsersHandler(users *store.Users, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		number := c.Query("number")
		servePage(c, rdb, ttl, func(page, size int) string {
			return pageKey(adminUsersPrefix, "number="+number, page, size)
		}, "users", func(ctx context.Context, page, size int) (any, int64, error) {
			return users.List(ctx, store.UserFilter{Number: number, Page: page, PageSize: size})
		})
	}
}

// ListAgentsHandler returns agents in every approval state
func ListAgentsHandler(users *store.Users, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		servePage(c, rdb, ttl, func(page, size int) string {
			return pageKey(adminAgentsPrefix, "all", page, size)
		}, "users", func(ctx context.Context, page, size int) (any, int64, error) {
			return users.List(ctx, store.UserFilter{Role: domain.RoleAgent, Page: page, PageSize: size})
		})
	}
}

// ListTransactionsHandler returns the whole ledger, newest first, optionally filtered by ?type=
func ListTransactionsHandler(txs *store.Transactions, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := domain.TxType(c.Query("type"))
		if kind != "" && !kind.Valid() {
			reply(c, http.StatusBadRequest, false, "Invalid transaction type")
			return
		}
		servePage(c, rdb, ttl, func(page, size int) string {
			return pageKey(adminTxsPrefix, "type="+string(kind), page, size)
		}, "transactions", func(ctx context.Context, page, size int) (any, int64, error) {
			return txs.List(ctx, store.TxFilter{Type: kind, Page: page, PageSize: size})
		})
	}
}

// adminWriteOK maps store errors of an admin write to a response. It reports whether the handler may continue.
func adminWriteOK(c *gin.Context, err error, action string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrUserNotFound):
		reply(c, http.StatusNotFound, false, "User not found")
	default:
		storeFailure(c, err, action)
	}
	return false
}

// invalidateUser drops every cached view that can contain u
func invalidateUser(ctx context.Context, rdb *redis.Client, u *domain.User) {
	invalidate(ctx, rdb, []string{userKey(u.Email), totalBalanceKey}, adminUsersPrefix, adminAgentsPrefix)
}
