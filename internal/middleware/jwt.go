package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"easy_pay/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys and cookie name shared with the handlers
const (
	ClaimsKey   = "claims" // Decoded token claims
	TokenCookie = "token"  // httpOnly session cookie
	UserIDClaim = "uid"    // Set only by login; stripped from caller supplied claims
)

// JWTAuthMiddleware validates the session token from the Authorization header or the token cookie
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c) // Header wins over cookie
		if tokenStr == "" {
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				tokenStr = cookie
			}
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// Missing, malformed, expired or badly signed
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		c.Set(ClaimsKey, claims) // Store claims in context
		c.Next()                 // Proceed to the next handler
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// ClaimsFrom returns the claims stored by JWTAuthMiddleware
func ClaimsFrom(c *gin.Context) utils.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(utils.Claims); ok {
			return claims
		}
	}
	return nil
}
