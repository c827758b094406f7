// Package travel wraps the upstream travel-search API. Every public search
// degrades to a deterministic sample dataset instead of failing, and marks the
// result with Fallback.
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/AnshRaj112/natpac-travel-backend/internal/cache"
	"github.com/AnshRaj112/natpac-travel-backend/internal/config"
)

const requestTimeout = 15 * time.Second

// Options configures a Gateway. Zero values get sensible defaults.
type Options struct {
	BaseURL       string
	APIKey        string
	APISecret     string
	DefaultOrigin string
	HTTPClient    *http.Client
	Cache         cache.Cache
	Logger        *zap.Logger
}

type Gateway struct {
	baseURL       string
	defaultOrigin string
	tokens        *TokenSource
	client        *http.Client
	cache         cache.Cache
	log           *zap.Logger
	now           func() time.Time
}

func NewGateway(opts Options) *Gateway {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultOrigin == "" {
		opts.DefaultOrigin = "DEL"
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	return &Gateway{
		baseURL:       base,
		defaultOrigin: strings.ToUpper(opts.DefaultOrigin),
		tokens:        NewTokenSource(base, opts.APIKey, opts.APISecret, client),
		client:        client,
		cache:         opts.Cache,
		log:           opts.Logger,
		now:           time.Now,
	}
}

// New builds a Gateway from application config.
func New(cfg *config.Config, c cache.Cache, log *zap.Logger) *Gateway {
	return NewGateway(Options{
		BaseURL:       cfg.AmadeusBaseURL,
		APIKey:        cfg.AmadeusAPIKey,
		APISecret:     cfg.AmadeusAPISecret,
		DefaultOrigin: cfg.DefaultOriginAirport,
		Cache:         c,
		Logger:        log,
	})
}

// Configured reports whether upstream credentials are present.
func (g *Gateway) Configured() bool {
	return g.tokens.Configured()
}

// getJSON performs an authenticated GET and decodes the body into out.
func (g *Gateway) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	token, err := g.tokens.Token(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := g.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (g *Gateway) degrade(op string, err error) {
	g.log.Warn("travel api unavailable, serving sample data", zap.String("op", op), zap.Error(err))
}
