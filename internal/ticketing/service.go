// Package ticketing implements the event and ticket registries on top of
// an injected store.
package ticketing

import (
	"github.com/sirupsen/logrus"

	"github.com/farellandr/ticketmint/internal/clock"
	"github.com/farellandr/ticketmint/internal/proof"
	"github.com/farellandr/ticketmint/internal/store"
)

type Service struct {
	store  store.Store
	proof  *proof.Generator
	clock  clock.Clock
	logger *logrus.Logger
}

type Option func(*Service)

// WithClock overrides the clock used for ticket issuance times.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(st store.Store, gen *proof.Generator, opts ...Option) *Service {
	if gen == nil {
		gen = &proof.Generator{}
	}
	svc := &Service{
		store:  st,
		proof:  gen,
		clock:  clock.NewSystem(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}
