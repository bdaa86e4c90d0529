// Package gist resolves the current revision of a CLA document stored in a
// GitHub gist.
package gist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pmn/cla-assistant/internal/entities"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 4 << 20

// Options configures a Resolver.
type Options struct {
	// BaseURL is scheme://host:port of the gist API.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RateLimit caps outbound requests per second; zero disables throttling.
	RateLimit float64
	RateBurst int
}

// Resolver fetches gists from the GitHub API. It keeps no state between calls.
type Resolver struct {
	log       *zap.SugaredLogger
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// NewResolver constructs a Resolver.
func NewResolver(log *zap.SugaredLogger, client *http.Client, opts Options) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return &Resolver{
		log:       log.Named("gist"),
		client:    client,
		limiter:   limiter,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
	}
}

type gistResponse struct {
	URL       string `json:"url"`
	UpdatedAt string `json:"updated_at"`
	Files     map[string]struct {
		Content string `json:"content"`
	} `json:"files"`
	History []struct {
		Version string `json:"version"`
	} `json:"history"`
}

// Resolve fetches the gist behind locator and reports its current version.
// A pinned locator version is returned as-is.
func (r *Resolver) Resolve(ctx context.Context, locator entities.GistLocator, token string) (*entities.Gist, error) {
	id, err := locator.ID()
	if err != nil {
		return nil, err
	}

	path := "/gists/" + id
	if locator.Version != "" {
		path += "/" + locator.Version
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for gist rate limit: %w", entities.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build gist request: %w", entities.ErrTransport, err)
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warnw("gist request failed", "error", err, "gist_id", id)
		return nil, fmt.Errorf("%w: get gist %s: %w", entities.ErrTransport, id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read gist %s: %w", entities.ErrTransport, id, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.log.Warnw("gist request rejected", "status", resp.StatusCode, "gist_id", id)
		return nil, fmt.Errorf("%w: get gist %s: unexpected status %d", entities.ErrTransport, id, resp.StatusCode)
	}

	g, err := parseGist(body, locator.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: gist %s: %w", entities.ErrParse, id, err)
	}
	r.log.Debugw("gist resolved", "gist_id", id, "version", g.Version)
	return g, nil
}

func parseGist(body []byte, pinned string) (*entities.Gist, error) {
	var raw gistResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	g := &entities.Gist{
		URL:     raw.URL,
		Version: pinned,
		Files:   make(map[string]string, len(raw.Files)),
	}
	if g.Version == "" {
		if len(raw.History) == 0 || raw.History[0].Version == "" {
			return nil, errors.New("gist has no revision history")
		}
		g.Version = raw.History[0].Version
	}
	for name, f := range raw.Files {
		g.Files[name] = f.Content
	}
	if raw.UpdatedAt != "" {
		ts, err := time.Parse(time.RFC3339, raw.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("updated_at: %w", err)
		}
		g.UpdatedAt = ts
	}
	return g, nil
}
