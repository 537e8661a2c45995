package docgate

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/docgate/internal/engine"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	host      string
	port      int
	username  string
	password  string
	useTLS    bool
	verifyTLS bool
	poolSize  int
	timeout   time.Duration

	index          string
	searchIndex    string
	analyticsIndex string
	exactField     string
	refresh        string
	maxBatchSize   int
	seedFile       string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		port:      9200,
		useTLS:    true,
		verifyTLS: true,
		poolSize:  engine.DefaultPoolSize,
		timeout:   engine.DefaultRequestTimeout,
	}
}

// WithEngine sets the OpenSearch host and port.
func WithEngine(host string, port int) Option {
	return optionFunc(func(c *clientConfig) {
		c.host = host
		c.port = port
	})
}

// WithBasicAuth sets engine credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithTLS toggles HTTPS and certificate verification. Both default to true.
func WithTLS(enabled, verify bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.useTLS = enabled
		c.verifyTLS = verify
	})
}

// WithPool sets the per-host connection pool size and request timeout.
// Non-positive values keep the defaults.
func WithPool(size int, timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		if size > 0 {
			c.poolSize = size
		}
		if timeout > 0 {
			c.timeout = timeout
		}
	})
}

// WithIndex sets the index that documents, bulk loads and search target.
func WithIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = name
	})
}

// WithSearchIndex sets the index fee search reads from.
// Defaults to the WithIndex value.
func WithSearchIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchIndex = name
	})
}

// WithAnalyticsIndex sets the index the dashboard aggregates over.
// Defaults to the WithIndex value.
func WithAnalyticsIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.analyticsIndex = name
	})
}

// WithExactField sets the field exact queries target when none is given.
func WithExactField(field string) Option {
	return optionFunc(func(c *clientConfig) {
		c.exactField = field
	})
}

// WithRefresh sets the refresh policy for writes: "true", "false" or "wait_for".
func WithRefresh(policy string) Option {
	return optionFunc(func(c *clientConfig) {
		c.refresh = policy
	})
}

// WithMaxBatchSize caps the number of documents per bulk load.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithSeedFile sets the JSON seed file used by Bulk().LoadSeed.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedFile = path
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
