package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK      CheckResult = "ok"
	CheckError   CheckResult = "error"
	CheckMissing CheckResult = "missing"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine  EnginePinger
	indexes IndexChecker
	index   string
}

// New creates a Service. indexes can be nil, which skips the index check.
func New(engine EnginePinger, indexes IndexChecker, index string) *Service {
	return &Service{engine: engine, indexes: indexes, index: index}
}

// Check pings the engine and, when it answers, verifies the index exists.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if err := s.engine.Ping(ctx); err != nil {
		checks["engine"] = CheckError
	} else {
		checks["engine"] = CheckOK
	}

	if s.indexes != nil && checks["engine"] == CheckOK {
		switch ok, err := s.indexes.IndexExists(ctx, s.index); {
		case err != nil:
			checks["index"] = CheckError
		case !ok:
			checks["index"] = CheckMissing
		default:
			checks["index"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
