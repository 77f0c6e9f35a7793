// Package auth supplies user auth tokens for privileged Smashcast API calls.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Token is a user auth token handed out by a Provider.
type Token struct {
	value string
}

// NewToken wraps a raw token string.
func NewToken(value string) Token {
	return Token{value: value}
}

// String returns the raw token value.
func (t Token) String() string {
	return t.value
}

// IsZero reports whether the token is unset.
func (t Token) IsZero() bool {
	return t.value == ""
}

// Provider supplies a user auth token on demand.
type Provider interface {
	UserToken(ctx context.Context) (Token, error)
}

// Static is a Provider wrapping a fixed, pre-acquired token.
type Static struct {
	token Token
}

// NewStatic creates a Provider that always returns the given token.
func NewStatic(raw string) *Static {
	return &Static{token: NewToken(raw)}
}

func (s *Static) UserToken(_ context.Context) (Token, error) {
	return s.token, nil
}

const (
	defaultTokenTTL   = 24 * time.Hour
	loginCallTimeout  = 10 * time.Second
	defaultAppName    = "desktop"
	tokenEndpointSlug = "/auth/token"
)

// LoginProvider obtains a token from the auth/token endpoint using account
// credentials and caches it until the TTL elapses.
type LoginProvider struct {
	tokenURL string
	login    string
	password string
	app      string
	ttl      time.Duration
	client   *http.Client
	clock    clockwork.Clock

	mu        sync.Mutex
	token     Token
	fetchedAt time.Time
}

// LoginOption customizes a LoginProvider.
type LoginOption func(*LoginProvider)

// WithTTL overrides how long a fetched token is reused before re-login.
func WithTTL(ttl time.Duration) LoginOption {
	return func(p *LoginProvider) { p.ttl = ttl }
}

// WithApp overrides the application name sent on login.
func WithApp(app string) LoginOption {
	return func(p *LoginProvider) { p.app = app }
}

// WithClock overrides the clock used for TTL checks.
func WithClock(clock clockwork.Clock) LoginOption {
	return func(p *LoginProvider) { p.clock = clock }
}

// WithHTTPClient overrides the HTTP client used for the login call.
func WithHTTPClient(client *http.Client) LoginOption {
	return func(p *LoginProvider) { p.client = client }
}

// NewLoginProvider creates a Provider that logs in against the given API base
// URL with the supplied credentials.
func NewLoginProvider(baseURL, login, password string, opts ...LoginOption) *LoginProvider {
	p := &LoginProvider{
		tokenURL: strings.TrimSuffix(baseURL, "/") + tokenEndpointSlug,
		login:    login,
		password: password,
		app:      defaultAppName,
		ttl:      defaultTokenTTL,
		client:   &http.Client{Timeout: loginCallTimeout},
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UserToken returns the cached token, logging in again once the TTL elapsed.
func (p *LoginProvider) UserToken(ctx context.Context) (Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.token.IsZero() && p.clock.Now().Before(p.fetchedAt.Add(p.ttl)) {
		return p.token, nil
	}

	token, err := p.requestToken(ctx)
	if err != nil {
		return Token{}, err
	}

	p.token = token
	p.fetchedAt = p.clock.Now()

	return token, nil
}

func (p *LoginProvider) requestToken(ctx context.Context) (Token, error) {
	payload, err := json.Marshal(map[string]string{
		"login": p.login,
		"pass":  p.password,
		"app":   p.app,
	})
	if err != nil {
		return Token{}, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return Token{}, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("failed to execute login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Token{}, fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AuthToken string `json:"authToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return Token{}, fmt.Errorf("failed to decode login response: %w", err)
	}

	if result.AuthToken == "" {
		return Token{}, fmt.Errorf("login response carried no auth token")
	}

	return NewToken(result.AuthToken), nil
}
