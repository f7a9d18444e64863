package profile

import "context"

// FactSource supplies the fact embedded in the profile.
type FactSource interface {
	Fact(ctx context.Context) (string, error)
}
