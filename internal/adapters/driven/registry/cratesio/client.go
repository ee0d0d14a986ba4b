package cratesio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RegistryClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = domain.DefaultRegistryBaseURL
	DefaultUserAgent         = domain.DefaultUserAgent
	DefaultTimeout           = domain.DefaultRequestTimeout
	DefaultRateLimitInterval = domain.DefaultRateLimitInterval

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 4096
)

// Config holds configuration for the crates.io client.
type Config struct {
	// BaseURL is the API root including the version segment
	// (default: https://crates.io/api/v1/).
	BaseURL string

	// UserAgent identifies the client to crates.io. Required by their
	// crawler policy.
	UserAgent string

	// Timeout bounds a single request (default: 10s).
	Timeout time.Duration

	// RateLimitInterval is the minimum spacing between requests
	// (default: 1.1s). Ignored when Gate is set.
	RateLimitInterval time.Duration

	// Gate is an optional shared throttle.
	Gate *Gate

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from registry settings.
func ConfigFromSettings(s domain.RegistrySettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		UserAgent:         s.UserAgent,
		Timeout:           s.Timeout,
		RateLimitInterval: s.RateLimitInterval,
	}
}

// Client talks to the crates.io API.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	userAgent string
	gate      *Gate
}

// NewClient creates a crates.io client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimitInterval == 0 {
		cfg.RateLimitInterval = DefaultRateLimitInterval
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url must be http or https: %s", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if base.Path == "" || base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	gate := cfg.Gate
	if gate == nil {
		gate = NewGate(cfg.RateLimitInterval)
	}

	return &Client{
		http:      httpClient,
		baseURL:   base,
		userAgent: cfg.UserAgent,
		gate:      gate,
	}, nil
}

// Search returns one page of crates matching the query.
func (c *Client) Search(ctx context.Context, q driven.RegistryQuery) (*driven.RegistryPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = 1
	}

	params := url.Values{}
	params.Set("q", q.Term)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("sort", sortParam(q.Sort))

	var resp searchResponse
	if err := c.get(ctx, "crates", params, &resp); err != nil {
		return nil, err
	}

	out := &driven.RegistryPage{
		Crates: make([]domain.Crate, 0, len(resp.Crates)),
		Total:  resp.Meta.Total,
	}
	for _, cj := range resp.Crates {
		out.Crates = append(out.Crates, cj.toCrate())
	}
	logger.Debug("crates.io search %q page %d: %d of %d", q.Term, page, len(out.Crates), out.Total)
	return out, nil
}

// GetCrate returns the full detail of one crate.
func (c *Client) GetCrate(ctx context.Context, name string) (*domain.CrateDetail, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: crate name is required", domain.ErrInvalidInput)
	}

	var resp crateResponse
	if err := c.get(ctx, "crates/"+url.PathEscape(name), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDetail(), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.gate.Wait(ctx); err != nil {
		return err
	}

	ref := &url.URL{Path: path}
	if params != nil {
		ref.RawQuery = params.Encode()
	}
	endpoint := c.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.wrapError(resp, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapError converts a non-200 response into a typed error.
func (c *Client) wrapError(resp *http.Response, endpoint string) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		rle := &RateLimitError{}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			rle.RetryAfter = time.Duration(secs) * time.Second
		}
		logger.Warn("crates.io rate limited (retry after %s)", rle.RetryAfter)
		return rle
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := http.StatusText(resp.StatusCode)
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && len(eb.Errors) > 0 && eb.Errors[0].Detail != "" {
		message = eb.Errors[0].Detail
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message, URL: endpoint}
}
