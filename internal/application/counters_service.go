package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

// CountersService owns the in-memory counters record and writes it through to
// the repository after every mutation.
type CountersService struct {
	mu     sync.Mutex
	repo   ports.CountersRepository
	clock  ports.Clock
	status *StatusPublisher
	logger *slog.Logger
	record domain.Counters
}

func NewCountersService(repo ports.CountersRepository, clock ports.Clock, status *StatusPublisher, logger *slog.Logger) *CountersService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &CountersService{
		repo:   repo,
		clock:  clock,
		status: status,
		logger: logging.OrDiscard(logger),
		record: domain.DefaultCounters(clock.Now()),
	}
}

// Load replaces the in-memory record with the persisted one. A missing or
// unreadable record degrades to defaults; it is never an error.
func (s *CountersService) Load(ctx context.Context) domain.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.repo.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrStateNotFound):
		s.logger.Info("no persisted counters, starting fresh")
		record = domain.DefaultCounters(s.clock.Now())
	default:
		s.logger.Warn("persisted counters unusable, starting fresh", "error", err)
		record = domain.DefaultCounters(s.clock.Now())
	}

	s.record = record
	s.publishLocked()
	return record.Clone()
}

func (s *CountersService) Snapshot() domain.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Record increments the daily counter for kind. Kinds without a daily counter
// are ignored.
func (s *CountersService) Record(ctx context.Context, kind domain.ActionKind) error {
	return s.mutate(ctx, func(c *domain.Counters) bool {
		return c.Increment(kind)
	})
}

// MaybeResetDaily zeroes the daily counters once per calendar day. Calling it
// again on the same day changes nothing.
func (s *CountersService) MaybeResetDaily(ctx context.Context) (bool, error) {
	reset := false
	err := s.mutate(ctx, func(c *domain.Counters) bool {
		reset = c.ResetIfNewDay(s.clock.Now())
		return reset
	})
	if reset {
		s.logger.Info("daily counters reset")
	}
	return reset, err
}

func (s *CountersService) CompleteSession(ctx context.Context) error {
	return s.mutate(ctx, func(c *domain.Counters) bool {
		c.TotalSessions++
		return true
	})
}

func (s *CountersService) RecordLoginAttempt(ctx context.Context) error {
	return s.mutate(ctx, func(c *domain.Counters) bool {
		c.LoginAttempts++
		return true
	})
}

func (s *CountersService) RecordLogin(ctx context.Context) error {
	return s.mutate(ctx, func(c *domain.Counters) bool {
		now := s.clock.Now()
		c.LastLogin = &now
		return true
	})
}

// mutate applies fn to a copy of the record, keeps it in memory even if the
// write fails, and publishes it while still holding mu so the status never
// runs ahead of or behind the record.
func (s *CountersService) mutate(ctx context.Context, fn func(*domain.Counters) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.record.Clone()
	if !fn(&next) {
		return nil
	}
	s.record = next
	s.publishLocked()

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist counters: %w", err)
	}
	return nil
}

func (s *CountersService) publishLocked() {
	if s.status != nil {
		s.status.PublishCounters(s.record)
	}
}
