package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// checkTimeout bounds each component check.
const checkTimeout = 3 * time.Second

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
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

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	facts FactChecker
}

// New creates a Service. facts can be nil.
func New(db DBPinger, facts FactChecker) *Service {
	return &Service{db: db, facts: facts}
}

// Check runs health checks against all components concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var dbResult, factResult CheckResult

	var g errgroup.Group
	g.Go(func() error {
		dbResult = runCheck(ctx, s.db.Ping)
		return nil
	})
	if s.facts != nil {
		g.Go(func() error {
			factResult = runCheck(ctx, s.facts.HealthCheck)
			return nil
		})
	}
	_ = g.Wait()

	checks := map[string]CheckResult{"database": dbResult}
	if s.facts != nil {
		checks["facts"] = factResult
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

func runCheck(ctx context.Context, fn func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
