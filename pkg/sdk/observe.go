package docgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/docgate/internal/domain"
)

// Outcome labels. Caller-caused failures get their own label so dashboards
// can tell them from engine trouble.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid_argument"
	outcomeNotFound    = "not_found"
	outcomeConflict    = "conflict"
	outcomePartial     = "partial_failure"
	outcomeRejected    = "engine_rejected"
	outcomeUnavailable = "engine_unavailable"
	outcomeTimeout     = "timeout"
	outcomeError       = "error"
)

var outcomes = []struct {
	target error
	label  string
}{
	{domain.ErrInvalidArgument, outcomeInvalid},
	{domain.ErrNotFound, outcomeNotFound},
	{domain.ErrConflict, outcomeConflict},
	{domain.ErrPartialFailure, outcomePartial},
	{domain.ErrEngineRejected, outcomeRejected},
	{domain.ErrConnection, outcomeUnavailable},
	{domain.ErrNotInitialized, outcomeUnavailable},
	{context.DeadlineExceeded, outcomeTimeout},
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	for _, o := range outcomes {
		if errors.Is(err, o.target) {
			return o.label
		}
	}
	return outcomeError
}

// callerFault reports outcomes that say nothing about engine health.
func callerFault(outcome string) bool {
	switch outcome {
	case outcomeInvalid, outcomeNotFound, outcomeConflict:
		return true
	}
	return false
}

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bulkItems  *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgate",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docgate",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK call latency including the engine round trip.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation"})
	bulkItems := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgate",
		Subsystem: "sdk",
		Name:      "bulk_items_total",
		Help:      "Bulk items sent through the SDK by result.",
	}, []string{"result"})

	var err error
	if operations, err = reuse(reg, operations); err != nil {
		return nil, err
	}
	if duration, err = reuse(reg, duration); err != nil {
		return nil, err
	}
	if bulkItems, err = reuse(reg, bulkItems); err != nil {
		return nil, err
	}
	return &sdkMetrics{operations: operations, duration: duration, bulkItems: bulkItems}, nil
}

// reuse registers c, or returns the collector already registered under the
// same descriptor so several clients can share one registry.
func reuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("docgate: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("docgate: metric registered with type %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer logs and counts SDK calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
	index   string
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer, index string) (*observer, error) {
	o := &observer{logger: logger, index: index}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	outcome := outcomeOf(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, outcome).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	if o.logger == nil {
		return
	}

	attrs := []any{"op", op, "index", o.index, "outcome", outcome, "elapsed", elapsed}
	switch {
	case err == nil:
		o.logger.Debug("docgate call", attrs...)
	case callerFault(outcome):
		o.logger.Info("docgate call refused", append(attrs, "error", err)...)
	default:
		o.logger.Warn("docgate call failed", append(attrs, "error", err)...)
	}
}

func (o *observer) observeBulk(rep BulkReport) {
	if o == nil || o.metrics == nil {
		return
	}
	failed := len(rep.Failed())
	o.metrics.bulkItems.WithLabelValues("stored").Add(float64(len(rep.Items) - failed))
	o.metrics.bulkItems.WithLabelValues("failed").Add(float64(failed))
}
