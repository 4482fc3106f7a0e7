package docsearch

import (
	"context"
	"errors"
	"time"

	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
)

// HealthStatus represents the aggregated engine health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"/"missing"
}

// Healthy reports whether every check passed.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// Health pings the engine and checks that the index exists.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}

	var err error
	if !status.Healthy() {
		err = errUnhealthy
	}
	c.obs.observe("health", start, err)
	return status
}

var errUnhealthy = errors.New("engine degraded")

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
