package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	domprofile "github.com/kailas-cloud/stranalyzer/internal/domain/profile"
	logpkg "github.com/kailas-cloud/stranalyzer/internal/logger"
)

// StatusSuccess is the only status the profile reports.
const StatusSuccess = "success"

// Identity is the static part of the profile.
type Identity struct {
	FullName string
	Email    string
	Stack    string
}

// Service assembles the profile payload.
type Service struct {
	identity Identity
	facts    FactSource
	now      func() time.Time
}

// New creates a profile service. facts can be nil.
func New(identity Identity, facts FactSource) *Service {
	return &Service{identity: identity, facts: facts, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Get returns the profile. A fact failure never fails the call; the fact
// text is replaced by a placeholder describing the error.
func (s *Service) Get(ctx context.Context) domprofile.Profile {
	return domprofile.Profile{
		FullName:       s.identity.FullName,
		Email:          s.identity.Email,
		Stack:          s.identity.Stack,
		CurrentUTCTime: s.now().UTC(),
		CatFact:        s.fact(ctx),
		Status:         StatusSuccess,
	}
}

func (s *Service) fact(ctx context.Context) string {
	if s.facts == nil {
		return domprofile.Placeholder(errNoSource)
	}
	fact, err := s.facts.Fact(ctx)
	if err != nil {
		logpkg.FromContext(ctx).Warn("Fact unavailable, using placeholder", zap.Error(err))
		return domprofile.Placeholder(err)
	}
	return fact
}
