package engine

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/kailas-cloud/docgate/internal/metrics"
	"github.com/kailas-cloud/docgate/internal/version"
)

// Compile-time check: Client implements Store.
var _ Store = (*Client)(nil)

// Connection defaults.
const (
	DefaultPoolSize       = 20
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds connection parameters for the search engine.
type Config struct {
	Host           string
	Port           int
	Username       string
	Password       string
	UseTLS         bool
	VerifyTLS      bool
	PoolSize       int
	RequestTimeout time.Duration
}

// Address returns the engine base URL.
func (c Config) Address() string {
	scheme := "http"
	if c.UseTLS {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks connection parameters.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("engine host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("engine port must be 1-65535, got %d", c.Port)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("engine pool size must be >= 1, got %d", c.PoolSize)
	}
	return nil
}

// Client implements Store over the OpenSearch REST API.
type Client struct {
	api       *opensearchapi.Client
	transport *http.Transport
	timeout   time.Duration
}

// NewStore creates an OpenSearch-backed store. It does not contact the engine.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.PoolSize,
		MaxIdleConnsPerHost: cfg.PoolSize,
		MaxConnsPerHost:     cfg.PoolSize,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS, //nolint:gosec // opt-out is explicit in config
			MinVersion:         tls.VersionTLS12,
		},
	}

	api, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses:    []string{cfg.Address()},
			Username:     cfg.Username,
			Password:     cfg.Password,
			Transport:    transport,
			DisableRetry: true,
			Header:       http.Header{"User-Agent": []string{version.UserAgent()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{api: api, transport: transport, timeout: timeout}, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, OpPing, func(ctx context.Context) (*opensearch.Response, error) {
		return c.api.Ping(ctx, nil)
	})
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases idle pooled connections.
func (c *Client) Close() {
	c.transport.CloseIdleConnections()
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := c.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for engine: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// call runs one typed API request bounded by the configured timeout, records
// its outcome and converts the library error into *Error. fn returns the raw
// response even on failure so the status code survives.
func (c *Client) call(
	ctx context.Context, op string, fn func(ctx context.Context) (*opensearch.Response, error),
) (*opensearch.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := fn(ctx)
	switch {
	case err == nil:
		metrics.ObserveEngineRequest(op, metrics.OutcomeOK, time.Since(start))
		return resp, nil
	case resp == nil && errors.Is(err, opensearch.ErrJSONUnmarshalBody):
		// The engine answered 2xx with a body the typed response cannot hold.
		metrics.ObserveEngineRequest(op, metrics.OutcomeRejected, time.Since(start))
		return nil, &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	case resp == nil:
		metrics.ObserveEngineRequest(op, metrics.OutcomeTransport, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &Error{Op: op, Err: ctxErr}
		}
		return nil, &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrConnection, err)}
	}
	metrics.ObserveEngineRequest(op, metrics.OutcomeRejected, time.Since(start))
	return resp, wrapError(op, resp, err)
}

// isNotFound reports whether err is an index- or document-level 404.
func isNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}
