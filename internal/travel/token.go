package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
)

// refreshMargin is subtracted from the upstream expires_in so a token is
// never used in its last minute.
const refreshMargin = 60 * time.Second

// TokenSource caches the client-credentials access token for the process.
// Concurrent refreshes collapse into one upstream call; a racing refresh can
// only overwrite the cache with another valid token.
type TokenSource struct {
	baseURL string
	key     string
	secret  string
	client  *http.Client
	now     func() time.Time

	group  singleflight.Group
	mu     sync.RWMutex
	token  string
	expiry time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func NewTokenSource(baseURL, key, secret string, client *http.Client) *TokenSource {
	return &TokenSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		secret:  secret,
		client:  client,
		now:     time.Now,
	}
}

// Configured reports whether both credentials are present.
func (s *TokenSource) Configured() bool {
	return s.key != "" && s.secret != ""
}

// Token returns the cached token or fetches a new one.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if !s.Configured() {
		return "", errs.ErrCredentialsMissing
	}
	if tok, ok := s.cached(); ok {
		return tok, nil
	}

	ch := s.group.DoChan("token", func() (any, error) {
		if tok, ok := s.cached(); ok {
			return tok, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()
		return s.fetch(fetchCtx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *TokenSource) cached() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token != "" && s.now().Before(s.expiry) {
		return s.token, true
	}
	return "", false
}

func (s *TokenSource) fetch(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.key},
		"client_secret": {s.secret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response without access_token")
	}

	expiry := s.now().Add(time.Duration(tr.ExpiresIn)*time.Second - refreshMargin)
	s.mu.Lock()
	s.token = tr.AccessToken
	s.expiry = expiry
	s.mu.Unlock()
	return tr.AccessToken, nil
}

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("travel api returned %d: %s", e.Code, e.Body)
}
