package fable

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/fabledesk/fable-go/internal/config"
	"github.com/fabledesk/fable-go/internal/observability"
	"github.com/fabledesk/fable-go/pkg/mockroute"
)

// ClientConfig holds all configuration for the fable client.
type ClientConfig struct {
	// Base URL resolution. Resolver wins over BaseURL when both are set.
	BaseURL  string
	Resolver BaseURLFunc

	// Timeouts
	Timeout       time.Duration // plain requests
	StreamTimeout time.Duration // streaming requests

	// HTTP
	HTTPClient   *http.Client
	MaxBodyBytes int64

	// Development-time mock routes
	Mock *mockroute.Router

	// Idempotent GET response caching
	CacheEnabled bool
	CacheTTL     time.Duration

	// Client-side rate limiting
	RateRPS   float64
	RateBurst int

	// Observability
	Logger *slog.Logger

	// Optional YAML config file with hot reload
	ConfigFile string
}

// Option configures the client.
type Option func(*ClientConfig)

func defaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:5001",
		Timeout:       config.DefaultRequestTimeout,
		StreamTimeout: config.DefaultStreamTimeout,
		CacheTTL:      30 * time.Second,
	}
}

// WithBaseURL sets a fixed backend address.
func WithBaseURL(url string) Option {
	return func(c *ClientConfig) {
		c.BaseURL = url
	}
}

// WithBaseURLResolver sets a resolver invoked on every request. Use PortFile
// when the backend is launched on a dynamic port.
func WithBaseURLResolver(fn BaseURLFunc) Option {
	return func(c *ClientConfig) {
		c.Resolver = fn
	}
}

// WithTimeout sets the default timeout for plain requests.
func WithTimeout(d time.Duration) Option {
	return func(c *ClientConfig) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithStreamTimeout sets the default timeout for streaming requests.
func WithStreamTimeout(d time.Duration) Option {
	return func(c *ClientConfig) {
		if d > 0 {
			c.StreamTimeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ClientConfig) {
		c.HTTPClient = hc
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *ClientConfig) {
		c.MaxBodyBytes = n
	}
}

// WithMockRouter injects a mock route table. Matching requests never touch
// the network.
func WithMockRouter(r *mockroute.Router) Option {
	return func(c *ClientConfig) {
		c.Mock = r
	}
}

// WithResponseCache enables in-memory caching of GET responses for ttl.
func WithResponseCache(ttl time.Duration) Option {
	return func(c *ClientConfig) {
		c.CacheEnabled = true
		if ttl > 0 {
			c.CacheTTL = ttl
		}
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *ClientConfig) {
		c.RateRPS = rps
		c.RateBurst = burst
	}
}

// WithLogger sets the structured logger. Logged request bodies pass through
// an API-key redactor regardless.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ClientConfig) {
		c.Logger = logger
	}
}

// WithConfigFile loads settings from a YAML file and watches it for changes.
// The file is authoritative for base URL, timeouts, cache, rate limit, and
// logging: its values replace the corresponding option values on load and on
// every reload, applying to subsequent requests without recreating the
// client. A logger passed via WithLogger is the one exception and is kept.
func WithConfigFile(path string) Option {
	return func(c *ClientConfig) {
		c.ConfigFile = path
	}
}

func (c *ClientConfig) limiter() *rate.Limiter {
	if c.RateRPS <= 0 {
		return nil
	}
	burst := c.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RateRPS), burst)
}

func (c *ClientConfig) logging() *observability.Logger {
	if c.Logger == nil {
		return observability.Nop()
	}
	return observability.Wrap(c.Logger, observability.NewRedactor())
}
