package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"gym-tracker/internal/config"
	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUnauthorized = errors.New("no valid session")
	ErrInvalidState = errors.New("invalid or expired oauth state")
	ErrLoginFailed  = errors.New("identity provider login failed")
	ErrUserNotFound = errors.New("user not found")
)

// stateTTL bounds how long a login redirect may take before the state
// parameter expires.
const stateTTL = 10 * time.Minute

// AuthService handles login through the external identity provider and the
// database-backed sessions it produces.
type AuthService interface {
	// LoginURL returns the provider authorize URL carrying a signed state.
	LoginURL() (string, error)
	// HandleCallback verifies state, exchanges the code, upserts the user
	// and opens a session. It returns the opaque session token for the
	// cookie.
	HandleCallback(ctx context.Context, code, state string) (string, *domain.User, error)
	// ValidateSession resolves a cookie token to its user, rejecting
	// missing or expired sessions with ErrUnauthorized.
	ValidateSession(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// idTokenClaims is the subset of provider ID-token claims we consume.
type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// tokenResponse is the provider token-endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
}

// authService implements the AuthService interface.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	oauth       config.OAuthConfig
	sessionTTL  time.Duration
	httpClient  *http.Client
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, oauth config.OAuthConfig, sessionTTL time.Duration) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		oauth:       oauth,
		sessionTTL:  sessionTTL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *authService) LoginURL() (string, error) {
	state, err := s.signState()
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", s.oauth.ClientID)
	q.Set("redirect_uri", s.oauth.RedirectURL)
	q.Set("scope", "openid email profile")
	q.Set("state", state)
	return strings.TrimSuffix(s.oauth.IssuerURL, "/") + "/oauth/authorize?" + q.Encode(), nil
}

func (s *authService) HandleCallback(ctx context.Context, code, state string) (string, *domain.User, error) {
	if err := s.verifyState(state); err != nil {
		return "", nil, err
	}

	claims, err := s.exchangeCode(ctx, code)
	if err != nil {
		return "", nil, err
	}
	if claims.Email == "" {
		return "", nil, fmt.Errorf("%w: id token carries no email", ErrLoginFailed)
	}

	user, err := s.upsertUser(ctx, claims)
	if err != nil {
		return "", nil, err
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}
	return session.Token, user, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		// Best effort cleanup; the session is invalid either way.
		_ = s.sessionRepo.DeleteByToken(ctx, token)
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.sessionRepo.DeleteByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// signState issues a short-lived HS256 token so the callback can verify the
// redirect round-tripped through us.
func (s *authService) signState() (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	})
	return token.SignedString([]byte(s.oauth.ClientSecret))
}

func (s *authService) verifyState(state string) error {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.oauth.ClientSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	return nil
}

// exchangeCode trades the authorization code for tokens and verifies the
// returned ID token against the shared client secret.
func (s *authService) exchangeCode(ctx context.Context, code string) (*idTokenClaims, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", s.oauth.ClientID)
	form.Set("client_secret", s.oauth.ClientSecret)
	form.Set("redirect_uri", s.oauth.RedirectURL)

	endpoint := strings.TrimSuffix(s.oauth.IssuerURL, "/") + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned %d", ErrLoginFailed, resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	if tokens.IDToken == "" {
		return nil, fmt.Errorf("%w: no id token in response", ErrLoginFailed)
	}

	claims := &idTokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokens.IDToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.oauth.ClientSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid id token", ErrLoginFailed)
	}
	return claims, nil
}

// upsertUser creates the account on first login and refreshes profile
// fields on subsequent ones.
func (s *authService) upsertUser(ctx context.Context, claims *idTokenClaims) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err == nil {
		if claims.Name != "" && claims.Name != user.Name {
			user.Name = claims.Name
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &domain.User{
		Name:  claims.Name,
		Email: claims.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
