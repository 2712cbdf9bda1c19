package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/service"
)

const testCookieName = "gym-tracker.session-token"

// fakeAuthService accepts exactly one token and returns one user.
type fakeAuthService struct {
	validToken string
	user       *domain.User
}

func (f *fakeAuthService) LoginURL() (string, error) { return "https://id.example.com/login", nil }

func (f *fakeAuthService) HandleCallback(context.Context, string, string) (string, *domain.User, error) {
	return f.validToken, f.user, nil
}

func (f *fakeAuthService) ValidateSession(_ context.Context, token string) (*domain.User, error) {
	if token == f.validToken {
		return f.user, nil
	}
	return nil, service.ErrUnauthorized
}

func (f *fakeAuthService) Logout(context.Context, string) error { return nil }

func setupProtectedRouter(auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", SessionMiddleware(auth, testCookieName), func(c *gin.Context) {
		id, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id.String()})
	})
	return router
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	auth := &fakeAuthService{validToken: "good", user: &domain.User{ID: uuid.New()}}
	router := setupProtectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	auth := &fakeAuthService{validToken: "good", user: &domain.User{ID: uuid.New()}}
	router := setupProtectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "stale"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareValidToken(t *testing.T) {
	user := &domain.User{ID: uuid.New()}
	auth := &fakeAuthService{validToken: "good", user: user}
	router := setupProtectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "good"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
}

func TestRedirectIfAuthenticated(t *testing.T) {
	auth := &fakeAuthService{validToken: "good", user: &domain.User{ID: uuid.New()}}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/login", RedirectIfAuthenticated(auth, testCookieName), func(c *gin.Context) {
		c.String(http.StatusOK, "login page")
	})

	// Logged-in users bounce to the app.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "good"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// Anonymous users see the page.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
