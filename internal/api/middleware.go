package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gym-tracker/internal/service"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "user"
)

// SessionMiddleware creates a Gin middleware that resolves the session
// cookie to a user. Requests without a valid session are rejected with 401
// and a redirect hint so the frontend can send the user to the login page
// instead of rendering partial data.
func SessionMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				abortUnauthorized(c)
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Session lookup failed")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RedirectIfAuthenticated sends already-logged-in users away from the login
// page.
func RedirectIfAuthenticated(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if _, err := authService.ValidateSession(c.Request.Context(), token); err == nil {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Authentication required",
		"redirect": "/login",
	})
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getUserIDFromContext returns the authenticated caller's user ID. Must run
// after SessionMiddleware.
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid user ID type in context")
	}
	return id, nil
}
