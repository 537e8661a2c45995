package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates every check failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	CheckEngine     = "engine"
	CheckConnection = "connection"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine EnginePinger
	conn   ConnectionState
}

// New creates a Service. conn can be nil.
func New(engine EnginePinger, conn ConnectionState) *Service {
	return &Service{engine: engine, conn: conn}
}

// Check pings the engine, then reports whether the shared connection exists.
// The ping runs first because it may be what builds the connection.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.engine.Ping(ctx); err != nil {
		checks[CheckEngine] = CheckError
	} else {
		checks[CheckEngine] = CheckOK
	}

	if s.conn != nil {
		if s.conn.Initialized() {
			checks[CheckConnection] = CheckOK
		} else {
			checks[CheckConnection] = CheckError
		}
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
