package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
	"golang.org/x/time/rate"
)

const (
	maxResponseBytes      = 4 << 20
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	BaseURL string
	// RequestsPerSecond caps the request rate. Zero or less disables
	// throttling.
	RequestsPerSecond float64
	RequestTimeout    time.Duration
	HTTPClient        *http.Client
}

// Client talks to the platform gateway over HTTP JSON. It holds the
// authenticated session in memory; the session manager persists it.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter

	mu      sync.RWMutex
	profile domain.DeviceProfile
	session sessionState
}

var _ ports.PlatformClient = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		timeout: timeout,
		limiter: limiter,
	}, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError is a non-2xx gateway response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("gateway status %d: %s: %s", e.Status, e.Code, e.Message)
	case e.Code != "":
		return fmt.Sprintf("gateway status %d: %s", e.Status, e.Code)
	case e.Message != "":
		return fmt.Sprintf("gateway status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("gateway status %d", e.Status)
	}
}

// Unwrap maps the response onto the domain error taxonomy.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "challenge_required", "checkpoint_required":
		return domain.ErrChallengeRequired
	case "login_required":
		return domain.ErrLoginRequired
	}

	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrLoginRequired
	case e.Status == http.StatusTooManyRequests, e.Status >= http.StatusInternalServerError:
		return domain.ErrTransient
	default:
		return nil
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("request %s: %w: %w", path, domain.ErrTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request %s: %w", path, decodeError(resp))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) decorate(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.profile.UserAgent != "" {
		req.Header.Set("User-Agent", c.profile.UserAgent)
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	if c.session.DeviceID != "" {
		req.Header.Set("X-Device-ID", c.session.DeviceID)
	}
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err == nil {
		apiErr.Code = strings.TrimSpace(payload.Error)
		apiErr.Message = strings.TrimSpace(payload.Message)
	}
	return apiErr
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("gateway base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gateway base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("gateway base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("gateway base url host is required")
	}
	return parsed, nil
}
