package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token lifetime

	"easy_pay/internal/config"     // Application configuration
	"easy_pay/internal/domain"     // Importing domain models
	"easy_pay/internal/middleware" // Claims and cookie names
	"easy_pay/internal/store"      // Identity store
	"easy_pay/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// RegisterRequest is the registration body
type RegisterRequest struct {
	Name   string `json:"name" binding:"required"`                       // Display name
	Email  string `json:"email" binding:"required,email"`                // Unique email
	Number string `json:"number" binding:"required,numeric"`             // Unique wallet number
	NID    string `json:"nid" binding:"required"`                        // Unique national ID
	Pin    string `json:"pin" binding:"required,numeric,min=4,max=6"`    // Plaintext PIN, hashed before storage
	Role   string `json:"role" binding:"omitempty,oneof=customer agent"` // Admins are never registered
}

// LoginRequest is read from the query string
type LoginRequest struct {
	Email string `form:"email" binding:"required"` // Email or wallet number
	Pin   string `form:"pin" binding:"required"`   // Plaintext PIN
}

// RegisterHandler creates a customer or a pending agent
func RegisterHandler(users *store.Users, rdb *redis.Client, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			reply(c, http.StatusBadRequest, false, "Invalid request")
			return
		}
		digest, err := utils.HashPin(req.Pin, bcryptCost) // Hash the PIN before anything is stored
		if err != nil {
			storeFailure(c, err, "Failed to hash pin")
			return
		}
		user := domain.User{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Number:    req.Number,
			NID:       req.NID,
			PinDigest: digest,
			Role:      domain.RoleCustomer,
		}
		if req.Role == domain.RoleAgent {
			user.Role = domain.RoleAgent
			user.AgentStatus = domain.AgentPending // Waits for an admin decision
		}
		if err := users.Register(c.Request.Context(), &user); err != nil {
			var dup *store.DuplicateError
			if errors.As(err, &dup) {
				reply(c, http.StatusOK, false, dup.Error()) // Business failure, not a protocol error
				return
			}
			storeFailure(c, err, "Registration failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,     // New user id
			"number":  user.Number, // Wallet number
			"role":    user.Role,   // Registered role
		}).Info("User registered")
		invalidate(c.Request.Context(), rdb, nil, adminUsersPrefix, adminAgentsPrefix)
		c.JSON(http.StatusCreated, gin.H{
			"acknowledged": true,
			"insertedId":   user.ID,
			"success":      true,
			"message":      "User registered successfully",
		})
	}
}

// LoginHandler checks the PIN for an email or number and starts a session
func LoginHandler(users *store.Users, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			reply(c, http.StatusBadRequest, false, "Invalid request")
			return
		}
		user, err := users.FindByIdentifier(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if errors.Is(err, domain.ErrUserNotFound) {
			reply(c, http.StatusOK, false, "User not found")
			return
		}
		if err != nil {
			storeFailure(c, err, "Login lookup failed")
			return
		}
		if !utils.CheckPin(req.Pin, user.PinDigest) {
			reply(c, http.StatusOK, false, "Incorrect PIN")
			return
		}
		token, err := utils.GenerateJWT(map[string]any{
			"email":                user.Email,
			middleware.UserIDClaim: user.ID,
		}, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			storeFailure(c, err, "Failed to generate token")
			return
		}
		setTokenCookie(c, cfg, token)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"success": true,
			"user":    user,
			"token":   token,
		})
	}
}

// IssueTokenHandler signs whatever claims the caller posts, except the login-only user id
func IssueTokenHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			reply(c, http.StatusBadRequest, false, "Invalid request")
			return
		}
		delete(payload, middleware.UserIDClaim) // Identity for the admin gate comes from login only
		token, err := utils.GenerateJWT(payload, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			storeFailure(c, err, "Failed to generate token")
			return
		}
		setTokenCookie(c, cfg, token)
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(sameSite(cfg))
		c.SetCookie(middleware.TokenCookie, "", -1, "/", "", cfg.IsProd, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// VerifyTokenHandler echoes the decoded claims
func VerifyTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.ClaimsFrom(c))
	}
}

func setTokenCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(sameSite(cfg))
	c.SetCookie(middleware.TokenCookie, token, int(cfg.TokenTTL/time.Second), "/", "", cfg.IsProd, true)
}

// Cross-site cookies need SameSite=None, which browsers only accept over HTTPS
func sameSite(cfg *config.Config) http.SameSite {
	if cfg.IsProd {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
