package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// FactChecker checks fact provider availability.
type FactChecker interface {
	HealthCheck(ctx context.Context) error
}
