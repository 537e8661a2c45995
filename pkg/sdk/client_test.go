package docgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_NoHost(t *testing.T) {
	if _, err := New(context.Background(), WithIndex("fees")); err == nil {
		t.Fatal("expected error when no host provided")
	}
}

func TestNew_NoIndex(t *testing.T) {
	if _, err := New(context.Background(), WithEngine("localhost", 9200)); err == nil {
		t.Fatal("expected error when no index provided")
	}
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(context.Background(), WithEngine("localhost", 70000), WithIndex("fees"))
	if err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := defaultClientConfig()
	reg := prometheus.NewRegistry()
	logger := slog.Default()

	opts := []Option{
		WithEngine("search.local", 9201),
		WithBasicAuth("admin", "secret"),
		WithTLS(false, false),
		WithPool(5, 3*time.Second),
		WithIndex("fees"),
		WithSearchIndex("dev.paytic.visa_fees"),
		WithAnalyticsIndex("fees-reporting"),
		WithExactField("entity_name"),
		WithRefresh("wait_for"),
		WithMaxBatchSize(500),
		WithSeedFile("seed.json"),
		WithLogger(logger),
		WithPrometheus(reg),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.host != "search.local" || cfg.port != 9201 {
		t.Errorf("engine = %s:%d", cfg.host, cfg.port)
	}
	if cfg.username != "admin" || cfg.password != "secret" {
		t.Errorf("auth = %s/%s", cfg.username, cfg.password)
	}
	if cfg.useTLS || cfg.verifyTLS {
		t.Error("tls not disabled")
	}
	if cfg.poolSize != 5 || cfg.timeout != 3*time.Second {
		t.Errorf("pool = %d/%v", cfg.poolSize, cfg.timeout)
	}
	if cfg.index != "fees" || cfg.searchIndex != "dev.paytic.visa_fees" || cfg.exactField != "entity_name" {
		t.Errorf("indexes = %q/%q/%q", cfg.index, cfg.searchIndex, cfg.exactField)
	}
	if cfg.analyticsIndex != "fees-reporting" {
		t.Errorf("analytics index = %q", cfg.analyticsIndex)
	}
	if cfg.refresh != "wait_for" || cfg.maxBatchSize != 500 || cfg.seedFile != "seed.json" {
		t.Errorf("bulk = %q/%d/%q", cfg.refresh, cfg.maxBatchSize, cfg.seedFile)
	}
	if cfg.logger != logger || cfg.metricsReg != reg {
		t.Error("observability options not applied")
	}
}

func TestWithPool_KeepsDefaults(t *testing.T) {
	cfg := defaultClientConfig()
	WithPool(0, 0).apply(cfg)
	if cfg.poolSize <= 0 || cfg.timeout <= 0 {
		t.Errorf("pool = %d/%v, want defaults", cfg.poolSize, cfg.timeout)
	}
}

func TestObserver_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg, "fees")
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now(), nil)
	obs.observe("search", time.Now(), errors.New("boom"))
	obs.observe("search", time.Now(), fmt.Errorf("get: %w", ErrNotFound))
	obs.observe("search", time.Now(), fmt.Errorf("dial: %w", ErrConnection))

	for outcome, want := range map[string]float64{
		"ok": 1, "error": 1, "not_found": 1, "engine_unavailable": 1,
	} {
		got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", outcome))
		if got != want {
			t.Errorf("%s = %f, want %f", outcome, got, want)
		}
	}
}

func TestObserver_BulkItems(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg, "fees")
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observeBulk(BulkReport{Items: []BulkItem{{OK: true}, {OK: true}, {OK: false}}})

	if v := testutil.ToFloat64(obs.metrics.bulkItems.WithLabelValues("stored")); v != 2 {
		t.Errorf("stored = %f", v)
	}
	if v := testutil.ToFloat64(obs.metrics.bulkItems.WithLabelValues("failed")); v != 1 {
		t.Errorf("failed = %f", v)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg, "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := newObserver(nil, reg, "b")
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("second observer did not reuse the registered counter")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("ping", time.Now(), nil)
	obs.observeBulk(BulkReport{Items: []BulkItem{{OK: false}}})
}
