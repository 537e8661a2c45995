package docgate

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docgate/internal/domain"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
)

// HealthState is the aggregated result of the health checks.
type HealthState string

// Health states.
const (
	HealthOK       HealthState = "ok"
	HealthDegraded HealthState = "degraded"
	HealthError    HealthState = "error"
)

// Checked components.
const (
	CheckEngine     = healthuc.CheckEngine
	CheckConnection = healthuc.CheckConnection
)

// HealthStatus reports each component as passing or failing.
type HealthStatus struct {
	State  HealthState
	Checks map[string]bool
}

// OK reports whether every check passed.
func (h HealthStatus) OK() bool { return h.State == HealthOK }

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Health pings the engine and reports whether the shared connection is up.
// It never returns an error; failures show up as failing checks.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	h := HealthStatus{
		State:  HealthState(report.Status),
		Checks: make(map[string]bool, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = res == healthuc.CheckOK
	}

	var err error
	if !h.OK() {
		err = fmt.Errorf("health %s: %w", h.State, domain.ErrConnection)
	}
	c.obs.observe("health", start, err)
	return h
}
