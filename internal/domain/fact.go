package domain

import "context"

// FactSource is the shared contract for third-party fact providers.
type FactSource interface {
	Fact(ctx context.Context) (string, error)
}

// HealthChecker verifies an upstream dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
