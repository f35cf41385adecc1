package utils

import (
	"encoding/json" // Number claims
	"errors"        // Error values
	"strconv"       // Number claims
	"time"          // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims is the decoded payload of a session token
type Claims = jwt.MapClaims

// GenerateJWT signs an arbitrary claims payload, stamping iat and exp on a copy of it
func GenerateJWT(payload map[string]any, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v // Copy caller claims
	}
	claims["iat"] = jwt.NewNumericDate(now)          // Issued at current time
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl)) // Token expires after ttl
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret)) // Sign the token with the secret
}

// ParseJWT parses and validates a token string. Any failure is an error; callers treat it as unauthorized.
func ParseJWT(tokenStr, secret string) (Claims, error) {
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err // Malformed, expired or badly signed
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// ClaimString returns a string claim or "" when absent
func ClaimString(claims Claims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// ClaimUint returns a positive integer claim. JSON numbers decode as float64.
func ClaimUint(claims Claims, key string) (uint, bool) {
	switch v := claims[key].(type) {
	case float64:
		if v > 0 && v == float64(uint(v)) {
			return uint(v), true
		}
	case json.Number:
		if n, err := strconv.ParseUint(v.String(), 10, 64); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}
