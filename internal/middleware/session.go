package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
)

// SessionValidator checks that a token id is the student's latest login.
type SessionValidator interface {
	ValidateStudentSession(ctx context.Context, studentID int, jti string) error
}

// CheckSingleDeviceSession validates the JWT's JTI against the active session in Redis.
// A newer login on another device replaces the stored JTI, so older tokens fail here.
func CheckSingleDeviceSession(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := sessions.ValidateStudentSession(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
