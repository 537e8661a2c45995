package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docgate/internal/domain/analytics"
	"github.com/kailas-cloud/docgate/internal/engine"
)

// Config holds the docgate API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Engine    EngineConfig    `yaml:"engine"`
	Index     IndexConfig     `yaml:"index"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Bulk      BulkConfig      `yaml:"bulk"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys      []string `yaml:"api_keys"`
	OperatorKeys []string `yaml:"operator_keys"` // required for destructive routes
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// EngineConfig holds search engine connection settings.
type EngineConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	UseTLS            *bool  `yaml:"use_tls"`
	VerifyTLS         *bool  `yaml:"verify_tls"`
	PoolSize          int    `yaml:"pool_size"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	ReadinessTimeout  int    `yaml:"readiness_timeout_sec"`
}

// IndexConfig names the indexes the API serves.
type IndexConfig struct {
	Name            string `yaml:"name"`
	Shards          int    `yaml:"shards"`
	SearchIndex     string `yaml:"search_index"`
	ExactField      string `yaml:"exact_field"`
	DefaultPageSize int    `yaml:"default_page_size"`
	EnsureOnStart   bool   `yaml:"ensure_on_start"`
}

// AnalyticsConfig names the index and fields the dashboard facets aggregate over.
type AnalyticsConfig struct {
	Index         string `yaml:"index"` // defaults to index.name
	EntityField   string `yaml:"entity_field"`
	CategoryField string `yaml:"category_field"`
	AmountField   string `yaml:"amount_field"`
	CreatedField  string `yaml:"created_field"`
	UpdatedField  string `yaml:"updated_field"`
}

// BulkConfig holds bulk ingestion settings.
type BulkConfig struct {
	SeedFile     string `yaml:"seed_file"`
	Refresh      string `yaml:"refresh"` // "", "true", "false", "wait_for"
	MaxBatchSize int    `yaml:"max_batch_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// loadDotEnv applies the override file named by DOTENV_FILE (default .env).
// Variables already set in the process environment win. A missing file is fine.
func loadDotEnv() error {
	path := os.Getenv("DOTENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Engine.Port == 0 {
		c.Engine.Port = 9200
	}
	if c.Engine.UseTLS == nil {
		c.Engine.UseTLS = boolPtr(true)
	}
	if c.Engine.VerifyTLS == nil {
		c.Engine.VerifyTLS = boolPtr(true)
	}
	if c.Engine.PoolSize == 0 {
		c.Engine.PoolSize = engine.DefaultPoolSize
	}
	if c.Engine.RequestTimeoutSec <= 0 {
		c.Engine.RequestTimeoutSec = int(engine.DefaultRequestTimeout / time.Second)
	}
	if c.Engine.ReadinessTimeout <= 0 {
		c.Engine.ReadinessTimeout = 10
	}
	if c.Index.Shards == 0 {
		c.Index.Shards = 1
	}
	if c.Index.SearchIndex == "" {
		c.Index.SearchIndex = "dev.paytic.visa_fees"
	}
	if c.Index.Name == "" {
		c.Index.Name = c.Index.SearchIndex
	}
	if c.Analytics.Index == "" {
		c.Analytics.Index = c.Index.Name
	}
	if c.Index.ExactField == "" {
		c.Index.ExactField = "name"
	}
	if c.Index.DefaultPageSize <= 0 {
		c.Index.DefaultPageSize = 10
	}

	def := analytics.DefaultFields()
	if c.Analytics.EntityField == "" {
		c.Analytics.EntityField = def.Entity
	}
	if c.Analytics.CategoryField == "" {
		c.Analytics.CategoryField = def.Category
	}
	if c.Analytics.AmountField == "" {
		c.Analytics.AmountField = def.Amount
	}
	if c.Analytics.CreatedField == "" {
		c.Analytics.CreatedField = def.Created
	}
	if c.Analytics.UpdatedField == "" {
		c.Analytics.UpdatedField = def.Updated
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if c.Index.Shards < 1 {
		return fmt.Errorf("index.shards must be >= 1, got %d", c.Index.Shards)
	}
	switch c.Bulk.Refresh {
	case "", "true", "false", "wait_for":
	default:
		return fmt.Errorf("bulk.refresh must be one of true, false, wait_for, got %q", c.Bulk.Refresh)
	}
	return nil
}

// EngineConfig converts the engine section into connection settings.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Host:           c.Engine.Host,
		Port:           c.Engine.Port,
		Username:       c.Engine.Username,
		Password:       c.Engine.Password,
		UseTLS:         c.Engine.UseTLS == nil || *c.Engine.UseTLS,
		VerifyTLS:      c.Engine.VerifyTLS == nil || *c.Engine.VerifyTLS,
		PoolSize:       c.Engine.PoolSize,
		RequestTimeout: time.Duration(c.Engine.RequestTimeoutSec) * time.Second,
	}
}

// AnalyticsFields converts the analytics section into facet field names.
func (c *Config) AnalyticsFields() analytics.Fields {
	return analytics.Fields{
		Entity:   c.Analytics.EntityField,
		Category: c.Analytics.CategoryField,
		Amount:   c.Analytics.AmountField,
		Created:  c.Analytics.CreatedField,
		Updated:  c.Analytics.UpdatedField,
	}
}

func boolPtr(b bool) *bool { return &b }

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
