package fable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/fabledesk/fable-go/internal/config"
	"github.com/fabledesk/fable-go/internal/metrics"
	"github.com/fabledesk/fable-go/internal/observability"
	"github.com/fabledesk/fable-go/pkg/apierr"
	"github.com/fabledesk/fable-go/pkg/mockroute"
	"github.com/fabledesk/fable-go/pkg/types"
)

// defaultMaxBodyBytes caps response bodies to 10MB. The backend returns
// small JSON envelopes; anything larger indicates a misbehaving response.
const defaultMaxBodyBytes int64 = 10 * 1024 * 1024

// Client talks to the local story-writing backend.
//
// Client is safe for concurrent use by multiple goroutines. Calls never
// share mutable request state; everything a config reload can touch (the
// resolver, timeouts, cache, limiter, logger) is swapped atomically.
type Client struct {
	httpClient *http.Client
	resolve    atomic.Pointer[BaseURLFunc]

	timeout       atomic.Int64 // nanoseconds
	streamTimeout atomic.Int64

	mock         *mockroute.Router
	respCache    atomic.Pointer[gocache.Cache]
	limiter      atomic.Pointer[rate.Limiter]
	logger       atomic.Pointer[observability.Logger]
	maxBodyBytes int64

	// customLogger marks a WithLogger override; the config file's logging
	// section never replaces a logger the caller supplied.
	customLogger bool

	cfgManager  *config.Manager
	cancelWatch context.CancelFunc
}

// RequestConfig carries per-call overrides. The zero value (or nil) uses the
// client defaults.
type RequestConfig struct {
	// Timeout overrides the client default for this call only.
	Timeout time.Duration
	// SkipErrorHandling keeps the raw error payload out of the returned
	// APIError, for call sites that present their own message.
	SkipErrorHandling bool
}

// New creates a client with the given options.
//
// Example:
//
//	client, err := fable.New(
//	    fable.WithBaseURLResolver(fable.PortFile("/tmp/fable.port")),
//	    fable.WithTimeout(30*time.Second),
//	)
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Client{
		mock:         cfg.Mock,
		maxBodyBytes: cfg.MaxBodyBytes,
		customLogger: cfg.Logger != nil,
	}
	if c.maxBodyBytes == 0 {
		c.maxBodyBytes = defaultMaxBodyBytes
	}
	c.logger.Store(cfg.logging())
	c.timeout.Store(int64(cfg.Timeout))
	c.streamTimeout.Store(int64(cfg.StreamTimeout))

	if cfg.CacheEnabled {
		c.respCache.Store(gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL))
	}
	if limiter := cfg.limiter(); limiter != nil {
		c.limiter.Store(limiter)
	}

	if cfg.HTTPClient != nil {
		c.httpClient = cfg.HTTPClient
	} else {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	if cfg.Resolver != nil {
		c.setResolver(cfg.Resolver)
	} else {
		c.setResolver(StaticBaseURL(cfg.BaseURL))
	}

	if cfg.ConfigFile != "" {
		if err := c.attachConfigFile(cfg); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// attachConfigFile loads the YAML file, applies it over the option values,
// and starts the hot-reload watcher.
func (c *Client) attachConfigFile(cc *ClientConfig) error {
	manager, err := config.NewManager(cc.ConfigFile, c.log().Logger)
	if err != nil {
		return fmt.Errorf("load config file: %w", err)
	}
	c.cfgManager = manager
	c.applyConfig(manager.Get())
	manager.Subscribe(c.applyConfig)

	ctx, cancel := context.WithCancel(context.Background())
	if err := manager.Watch(ctx); err != nil {
		cancel()
		return fmt.Errorf("watch config file: %w", err)
	}
	c.cancelWatch = cancel
	return nil
}

// applyConfig installs a loaded configuration. It runs both at construction
// and from the manager's reload goroutine, so every field it touches is
// swapped atomically while requests are in flight.
func (c *Client) applyConfig(cfg *config.Config) {
	c.timeout.Store(int64(cfg.RequestTimeout()))
	c.streamTimeout.Store(int64(cfg.StreamTimeout()))

	if cfg.PortFile != "" {
		c.setResolver(PortFile(cfg.PortFile))
	} else if cfg.BaseURL != "" {
		c.setResolver(StaticBaseURL(cfg.BaseURL))
	}

	if cfg.Cache.Enabled {
		ttl := cfg.Cache.TTL()
		c.respCache.Store(gocache.New(ttl, 2*ttl))
	} else {
		c.respCache.Store(nil)
	}

	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		if limiter := c.limiter.Load(); limiter != nil {
			limiter.SetLimit(rate.Limit(cfg.RateLimit.RPS))
			limiter.SetBurst(burst)
		} else {
			c.limiter.Store(rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst))
		}
	} else {
		c.limiter.Store(nil)
	}

	if !c.customLogger {
		c.logger.Store(observability.NewLogger(observability.Options{
			Level:  observability.ParseLevel(cfg.Logging.Level),
			Output: os.Stderr,
			JSON:   cfg.Logging.JSON,
		}, observability.NewRedactor()))
	}
}

func (c *Client) setResolver(fn BaseURLFunc) {
	c.resolve.Store(&fn)
}

func (c *Client) log() *observability.Logger {
	return c.logger.Load()
}

// Close releases the config watcher, if any. The HTTP client's idle
// connections are left to the transport.
func (c *Client) Close() error {
	if c.cancelWatch != nil {
		c.cancelWatch()
	}
	if c.cfgManager != nil {
		return c.cfgManager.Close()
	}
	return nil
}

// Timeout returns the current default timeout for plain requests.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.timeout.Load())
}

// StreamTimeout returns the current default timeout for streaming requests.
func (c *Client) StreamTimeout() time.Duration {
	return time.Duration(c.streamTimeout.Load())
}

// Do issues a request and decodes the entire response body into T. Call
// sites receive the whole envelope, not a narrowed view.
func Do[T any](ctx context.Context, c *Client, method, path string, body any, cfg *RequestConfig) (T, error) {
	var out T
	raw, err := c.do(ctx, method, path, body, cfg)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apierr.Wrap(fmt.Errorf("decode response: %w", err))
	}
	return out, nil
}

// Get issues a GET request.
func Get[T any](ctx context.Context, c *Client, path string, cfg *RequestConfig) (T, error) {
	return Do[T](ctx, c, http.MethodGet, path, nil, cfg)
}

// Post issues a POST request with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any, cfg *RequestConfig) (T, error) {
	return Do[T](ctx, c, http.MethodPost, path, body, cfg)
}

// Delete issues a DELETE request.
func Delete[T any](ctx context.Context, c *Client, path string, cfg *RequestConfig) (T, error) {
	return Do[T](ctx, c, http.MethodDelete, path, nil, cfg)
}

// do runs the full dispatch pipeline and returns the validated raw body.
func (c *Client) do(ctx context.Context, method, path string, body any, cfg *RequestConfig) ([]byte, error) {
	if limiter := c.limiter.Load(); limiter != nil && !limiter.Allow() {
		metrics.ObserveError(method, path, "rate_limited")
		return nil, apierr.NewHTTP(http.StatusTooManyRequests, "Rate limit exceeded")
	}

	if c.mock != nil {
		if payload, ok := c.mock.Lookup(method, path); ok {
			raw, err := json.Marshal(payload)
			if err != nil {
				return nil, apierr.Wrap(fmt.Errorf("encode mock payload: %w", err))
			}
			c.log().Debug("mock route hit", "method", method, "path", path)
			return raw, nil
		}
	}

	respCache := c.respCache.Load()
	if method == http.MethodGet && respCache != nil {
		if cached, ok := respCache.Get(path); ok {
			c.log().Debug("cache hit", "path", path)
			return cached.([]byte), nil
		}
	}

	start := time.Now()
	raw, status, err := c.roundTrip(ctx, method, path, body, cfg)
	if err != nil {
		apiErr := apierr.Wrap(err)
		metrics.ObserveError(method, path, errorReason(apiErr))
		c.log().RedactedError("request failed", "method", method, "path", path, "error", apiErr)
		return nil, apiErr
	}

	metrics.ObserveRequest(method, path, status, time.Since(start))
	c.log().Debug("request completed",
		"method", method, "path", path, "status", status, "elapsed", time.Since(start))

	if method == http.MethodGet && respCache != nil {
		respCache.SetDefault(path, raw)
	}
	return raw, nil
}

// roundTrip performs one HTTP exchange and validates the response envelope.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any, cfg *RequestConfig) ([]byte, int, error) {
	timeout := c.Timeout()
	skip := false
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		skip = cfg.SkipErrorHandling
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := c.readBody(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, transportError(err)
	}

	if err := validateEnvelope(resp.StatusCode, raw, skip); err != nil {
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}

// readBody reads the response up to the body cap. Oversized bodies are
// truncated rather than failed: the envelope fields sit at the front, and a
// runaway payload must not mask the status it arrived with.
func (c *Client) readBody(r io.Reader) ([]byte, error) {
	limited := &io.LimitedReader{R: r, N: c.maxBodyBytes}
	body, err := io.ReadAll(limited)
	if err != nil {
		return body, err
	}
	if limited.N == 0 {
		c.log().Debug("response body truncated", "cap_bytes", c.maxBodyBytes)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	base, err := (*c.resolve.Load())()
	if err != nil {
		return nil, fmt.Errorf("resolve base url: %w", err)
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// validateEnvelope turns HTTP-level and envelope-level failures into
// *apierr.Error. A body without a success field passes through untouched.
func validateEnvelope(status int, raw []byte, skip bool) error {
	if status >= http.StatusBadRequest {
		var env types.Envelope
		_ = json.Unmarshal(raw, &env)
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
		}
		apiErr := apierr.NewHTTP(status, msg)
		apiErr.Code = env.Code
		if !skip {
			apiErr.Response = json.RawMessage(raw)
		}
		return apiErr
	}

	var env types.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil // not an envelope body, leave it to the caller's type
	}
	if env.Failed() {
		msg := env.Error
		if msg == "" {
			msg = "Unknown error occurred"
		}
		apiErr := apierr.NewHTTP(status, msg)
		apiErr.Code = env.Code
		if !skip {
			apiErr.Response = json.RawMessage(raw)
		}
		return apiErr
	}
	return nil
}

// transportError maps context expiry and cancellation onto the fixed 408
// timeout error; everything else passes through for generic wrapping.
func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apierr.NewTimeout()
	}
	return err
}

func errorReason(err *apierr.Error) string {
	switch {
	case err.Status == http.StatusRequestTimeout:
		return "timeout"
	case err.Status >= http.StatusBadRequest:
		return "http_status"
	case err.Status > 0:
		return "envelope"
	default:
		return "transport"
	}
}
