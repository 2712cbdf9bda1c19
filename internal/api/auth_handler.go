package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-tracker/internal/config"
	"gym-tracker/internal/service"
)

// AuthHandler holds the auth service and cookie configuration.
type AuthHandler struct {
	authService service.AuthService
	session     config.SessionConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

// Login redirects the browser to the identity provider's authorize URL.
func (h *AuthHandler) Login(c *gin.Context) {
	loginURL, err := h.authService.LoginURL()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to start login")
		return
	}
	c.Redirect(http.StatusFound, loginURL)
}

// Callback completes the provider round trip: it verifies state, opens a
// session and sets the session cookie before sending the user home.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		abortWithError(c, http.StatusBadRequest, "Missing code or state")
		return
	}

	token, _, err := h.authService.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Login failed")
		return
	}

	h.setSessionCookie(c, token, int(h.session.TTL.Seconds()))
	c.Redirect(http.StatusFound, "/")
}

// Logout deletes the session row and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.session.CookieName())
	if err == nil && token != "" {
		_ = h.authService.Logout(c.Request.Context(), token)
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName(), value, maxAge, "/", h.session.Domain, h.session.Secure, true)
}
