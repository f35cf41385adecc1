package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"easy_pay/internal/domain" // Importing domain models
	"easy_pay/internal/store"  // Identity store
	"easy_pay/internal/utils"  // Claim helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// AdminOnlyMiddleware resolves the caller by the login-issued user id and checks its role in the store on each request
func AdminOnlyMiddleware(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)                        // Set by JWTAuthMiddleware
		id, ok := utils.ClaimUint(claims, UserIDClaim) // Only login issues this claim
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			logrus.WithError(err).Error("Admin lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "There was a server error"})
			return
		}
		// Check if user role is admin
		if user == nil || user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}
