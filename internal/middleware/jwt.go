package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// TokenValidator parses a bearer token into claims.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*service.Claims, error)
}

// RequireStudentJWT validates a student JWT from the Authorization header.
func RequireStudentJWT(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		authorize(c, tokens, tokenStr)
	}
}

// RequireStudentWSAuth validates a student JWT from the query param ?token=...
// Browsers cannot set headers on a WebSocket upgrade.
func RequireStudentWSAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = bearerToken(c)
		}
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		authorize(c, tokens, tokenStr)
	}
}

func authorize(c *gin.Context, tokens TokenValidator, tokenStr string) {
	claims, err := tokens.ValidateToken(tokenStr)
	if err != nil {
		code := response.ErrTokenInvalid
		if errors.Is(err, jwt.ErrTokenExpired) {
			code = response.ErrTokenExpired
		}
		response.AbortFail(c, http.StatusUnauthorized, code)
		return
	}

	c.Set(ContextKeyClaims, claims)
	c.Next()
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
