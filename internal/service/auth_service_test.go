package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-tracker/internal/config"
	"gym-tracker/internal/domain"
)

const testClientSecret = "test-secret"

// fakeProvider stands in for the identity provider's token endpoint. It
// returns an HS256 ID token carrying the given claims.
func fakeProvider(t *testing.T, email, name string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.NotEmpty(t, r.PostForm.Get("code"))

		now := time.Now()
		idToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": email,
			"name":  name,
			"iat":   now.Unix(),
			"exp":   now.Add(time.Hour).Unix(),
		})
		signed, err := idToken.SignedString([]byte(testClientSecret))
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "at",
			"id_token":     signed,
			"token_type":   "Bearer",
		})
	}))
}

func newAuthFixture(t *testing.T, issuerURL string) (*testEnv, AuthService) {
	t.Helper()
	env := newTestEnv(t)
	auth := NewAuthService(env.users, env.sessions, config.OAuthConfig{
		IssuerURL:    issuerURL,
		ClientID:     "gym-tracker",
		ClientSecret: testClientSecret,
		RedirectURL:  "http://localhost:8080/auth/callback",
	}, time.Hour)
	return env, auth
}

func TestLoginURLCarriesSignedState(t *testing.T) {
	_, auth := newAuthFixture(t, "https://id.example.com")

	loginURL, err := auth.LoginURL()
	require.NoError(t, err)

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", parsed.Path)
	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "gym-tracker", q.Get("client_id"))
	assert.NotEmpty(t, q.Get("state"))

	// The state must verify against the client secret.
	_, err = jwt.Parse(q.Get("state"), func(t *jwt.Token) (interface{}, error) {
		return []byte(testClientSecret), nil
	})
	assert.NoError(t, err)
}

func TestHandleCallbackCreatesUserAndSession(t *testing.T) {
	provider := fakeProvider(t, "alice@example.com", "Alice")
	defer provider.Close()
	_, auth := newAuthFixture(t, provider.URL)

	loginURL, err := auth.LoginURL()
	require.NoError(t, err)
	state := mustQueryParam(t, loginURL, "state")

	token, user, err := auth.HandleCallback(context.Background(), "any-code", state)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)

	resolved, err := auth.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestHandleCallbackUpsertsExistingUser(t *testing.T) {
	provider := fakeProvider(t, "alice@example.com", "Alice Updated")
	defer provider.Close()
	env, auth := newAuthFixture(t, provider.URL)
	existing := env.createUser(t, "Alice", "alice@example.com")

	state := mustQueryParam(t, mustLoginURL(t, auth), "state")
	_, user, err := auth.HandleCallback(context.Background(), "code", state)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID, "login by a known email reuses the account")
	assert.Equal(t, "Alice Updated", user.Name, "profile name refreshes on login")
}

func TestHandleCallbackRejectsBadState(t *testing.T) {
	provider := fakeProvider(t, "alice@example.com", "Alice")
	defer provider.Close()
	_, auth := newAuthFixture(t, provider.URL)

	_, _, err := auth.HandleCallback(context.Background(), "code", "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidState)

	// A state signed with a different secret fails too.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	_, _, err = auth.HandleCallback(context.Background(), "code", signed)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestValidateSessionRejectsExpired(t *testing.T) {
	env, auth := newAuthFixture(t, "https://id.example.com")
	alice := env.createUser(t, "Alice", "alice@example.com")

	session := &domain.Session{
		Token:     "expired-token",
		UserID:    alice.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, env.sessions.Create(context.Background(), session))

	_, err := auth.ValidateSession(context.Background(), "expired-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidateSessionRejectsUnknownToken(t *testing.T) {
	_, auth := newAuthFixture(t, "https://id.example.com")

	_, err := auth.ValidateSession(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	provider := fakeProvider(t, "alice@example.com", "Alice")
	defer provider.Close()
	_, auth := newAuthFixture(t, provider.URL)

	state := mustQueryParam(t, mustLoginURL(t, auth), "state")
	token, _, err := auth.HandleCallback(context.Background(), "code", state)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), token))

	_, err = auth.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Logging out twice is a no-op.
	assert.NoError(t, auth.Logout(context.Background(), token))
}

func mustLoginURL(t *testing.T, auth AuthService) string {
	t.Helper()
	loginURL, err := auth.LoginURL()
	require.NoError(t, err)
	return loginURL
}

func mustQueryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	value := parsed.Query().Get(key)
	require.NotEmpty(t, value)
	return value
}
