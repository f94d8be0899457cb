package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/model"
	"bytebazaar-storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager tracks the current authenticated identity. It is the single
// writer of that state; everything else reads through IsAuthenticated,
// Identity and Token. Login itself is delegated to the identity provider via
// redirect; HandleCallback completes the exchange.
type Manager struct {
	mu       sync.RWMutex
	identity *model.AuthIdentity
	expires  time.Time

	idClient client.IdentityClient
	sessions repository.SessionRepository
}

func NewManager(idClient client.IdentityClient, sessions repository.SessionRepository) *Manager {
	return &Manager{
		idClient: idClient,
		sessions: sessions,
	}
}

// idTokenClaims covers the claim names the provider emits.
type idTokenClaims struct {
	Email             string   `json:"email"`
	Username          string   `json:"username"`
	PreferredUsername string   `json:"preferred_username"`
	Name              string   `json:"name"`
	Groups            []string `json:"groups"`
	jwt.RegisteredClaims
}

// LoginURL is where the browser gets sent to authenticate.
func (m *Manager) LoginURL(state string) string {
	return m.idClient.AuthorizeURL(state)
}

// HandleCallback exchanges the code returned by the provider for tokens and
// installs the resulting identity. It does not return until the exchange has
// succeeded or failed, so the caller can route on the outcome.
func (m *Manager) HandleCallback(ctx context.Context, code string) (*model.AuthIdentity, error) {
	if code == "" {
		return nil, fmt.Errorf("callback missing authorization code")
	}

	tokens, err := m.idClient.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	identity, expires, err := identityFromTokens(tokens)
	if err != nil {
		return nil, fmt.Errorf("decode identity token: %w", err)
	}

	m.mu.Lock()
	m.identity = identity
	m.expires = expires
	m.mu.Unlock()

	if err := m.sessions.Save(ctx, &model.Session{
		UserID:      identity.ID,
		Email:       identity.Email,
		Username:    identity.Username,
		DisplayName: identity.DisplayName,
		Roles:       strings.Join(identity.Roles, ","),
		Token:       identity.Token,
		ExpiresAt:   expires,
	}); err != nil {
		// the in-memory session is live either way
		log.Printf("persist session failed (continuing logged in): %v", err)
	}

	return identity, nil
}

// Restore loads a previously persisted session on startup. Expired sessions
// are discarded rather than restored.
func (m *Manager) Restore(ctx context.Context) error {
	stored, err := m.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoSession) {
			return nil
		}
		return fmt.Errorf("load persisted session: %w", err)
	}

	if !stored.ExpiresAt.IsZero() && time.Now().After(stored.ExpiresAt) {
		_ = m.sessions.Delete(ctx)
		return nil
	}

	identity := &model.AuthIdentity{
		ID:          stored.UserID,
		Email:       stored.Email,
		Username:    stored.Username,
		DisplayName: stored.DisplayName,
		Token:       stored.Token,
	}
	if stored.Roles != "" {
		identity.Roles = strings.Split(stored.Roles, ",")
	}

	m.mu.Lock()
	m.identity = identity
	m.expires = stored.ExpiresAt
	m.mu.Unlock()
	return nil
}

// Logout clears local state and returns the provider's logout URL for the
// browser to finish the federated logout.
func (m *Manager) Logout(ctx context.Context) string {
	m.mu.Lock()
	m.identity = nil
	m.expires = time.Time{}
	m.mu.Unlock()

	_ = m.sessions.Delete(ctx)

	return m.idClient.LogoutRedirectURL()
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return false
	}
	if !m.expires.IsZero() && time.Now().After(m.expires) {
		return false
	}
	return true
}

// Identity returns a copy of the current identity, or nil when logged out.
func (m *Manager) Identity() *model.AuthIdentity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return nil
	}
	cp := *m.identity
	cp.Roles = append([]string(nil), m.identity.Roles...)
	return &cp
}

// Token implements client.TokenSource. Empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return ""
	}
	return m.identity.Token
}

// identityFromTokens builds an AuthIdentity from a token exchange result.
// Claims are read without signature verification: the tokens arrived
// directly from the provider's token endpoint over TLS, and the backend
// independently verifies the access token on every API call.
func identityFromTokens(tokens *client.TokenSet) (*model.AuthIdentity, time.Time, error) {
	claims := &idTokenClaims{}
	if tokens.IDToken != "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokens.IDToken, claims); err != nil {
			return nil, time.Time{}, fmt.Errorf("parse id token: %w", err)
		}
	}

	if claims.Subject == "" && tokens.IDToken != "" {
		return nil, time.Time{}, fmt.Errorf("id token missing sub claim")
	}

	expiresIn := tokens.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	expires := time.Now().Add(time.Duration(expiresIn) * time.Second)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(expires) {
		expires = claims.ExpiresAt.Time
	}
	if time.Now().After(expires) {
		return nil, time.Time{}, fmt.Errorf("received expired token")
	}

	username := claims.Username
	if username == "" {
		username = claims.PreferredUsername
	}
	display := claims.Name
	if display == "" {
		display = username
	}
	if display == "" {
		display = claims.Email
	}

	return &model.AuthIdentity{
		ID:          claims.Subject,
		Email:       claims.Email,
		Username:    username,
		DisplayName: display,
		Roles:       claims.Groups,
		Token:       tokens.AccessToken,
	}, expires, nil
}
