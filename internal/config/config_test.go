package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Engine: EngineConfig{Host: "localhost"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEngineHost(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.Host = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing engine host")
	}
}

func TestValidate_NegativePoolSize(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.PoolSize = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative pool size")
	}
}

func TestValidate_InvalidShards(t *testing.T) {
	cfg := validConfig()
	cfg.Index.Shards = -2

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative shards")
	}
}

func TestValidate_InvalidRefresh(t *testing.T) {
	cfg := validConfig()
	cfg.Bulk.Refresh = "sometimes"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid refresh policy")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Engine.Port != 9200 {
		t.Errorf("expected engine port 9200, got %d", cfg.Engine.Port)
	}
	if cfg.Engine.UseTLS == nil || !*cfg.Engine.UseTLS {
		t.Error("expected use_tls=true by default")
	}
	if cfg.Engine.VerifyTLS == nil || !*cfg.Engine.VerifyTLS {
		t.Error("expected verify_tls=true by default")
	}
	if cfg.Engine.PoolSize != 20 {
		t.Errorf("expected PoolSize=20, got %d", cfg.Engine.PoolSize)
	}
	if cfg.Engine.RequestTimeoutSec != 30 {
		t.Errorf("expected RequestTimeoutSec=30, got %d", cfg.Engine.RequestTimeoutSec)
	}
	if cfg.Index.SearchIndex != "dev.paytic.visa_fees" {
		t.Errorf("expected search index dev.paytic.visa_fees, got %q", cfg.Index.SearchIndex)
	}
	if cfg.Index.Name != cfg.Index.SearchIndex {
		t.Errorf("expected index name to follow search index, got %q", cfg.Index.Name)
	}
	if cfg.Index.DefaultPageSize != 10 {
		t.Errorf("expected DefaultPageSize=10, got %d", cfg.Index.DefaultPageSize)
	}
	if cfg.Analytics.Index != cfg.Index.Name {
		t.Errorf("expected analytics index to follow index name, got %q", cfg.Analytics.Index)
	}
	if cfg.Analytics.AmountField != "fee" {
		t.Errorf("expected amount field fee, got %q", cfg.Analytics.AmountField)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	off := false
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Engine: EngineConfig{Port: 9300, VerifyTLS: &off, PoolSize: 5},
		Index:  IndexConfig{Name: "fees", Shards: 4, DefaultPageSize: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if *cfg.Engine.VerifyTLS {
		t.Error("explicit verify_tls=false was overridden")
	}
	if cfg.Analytics.Index != "fees" {
		t.Errorf("expected analytics index fees, got %q", cfg.Analytics.Index)
	}
	if cfg.Index.Name != "fees" || cfg.Index.Shards != 4 {
		t.Errorf("index = %+v", cfg.Index)
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.Username = "admin"
	ec := cfg.EngineConfig()

	if !ec.UseTLS || !ec.VerifyTLS {
		t.Errorf("tls = %v/%v, want true/true", ec.UseTLS, ec.VerifyTLS)
	}
	if ec.RequestTimeout != 30*time.Second {
		t.Errorf("timeout = %v", ec.RequestTimeout)
	}
	if ec.Address() != "https://localhost:9200" {
		t.Errorf("address = %q", ec.Address())
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCGATE_TEST_SET", "opensearch.internal")

	got := string(expandEnvVars([]byte("a: ${DOCGATE_TEST_SET}\nb: ${DOCGATE_TEST_UNSET:-fallback}\nc: ${DOCGATE_TEST_UNSET}")))
	want := "a: opensearch.internal\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_WithDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.Mkdir(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	yml := "http:\n  port: 8081\nengine:\n  host: ${DOCGATE_DOTENV_HOST:-localhost}\n  use_tls: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "unit.yaml"), []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("DOCGATE_DOTENV_HOST=search.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_FILE", envFile)
	t.Cleanup(func() { _ = os.Unsetenv("DOCGATE_DOTENV_HOST") })

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.Host != "search.example" {
		t.Errorf("host = %q, want value from .env", cfg.Engine.Host)
	}
	if cfg.EngineConfig().UseTLS {
		t.Error("use_tls: false ignored")
	}
	if !cfg.EngineConfig().VerifyTLS {
		t.Error("verify_tls should default to true")
	}
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DOTENV_FILE", filepath.Join(dir, "absent.env"))

	if err := loadDotEnv(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
