package application

import (
	"context"
	"log/slog"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

// RateLimiter answers whether an action is allowed right now. The ceiling for
// each check is drawn fresh from the action's budget range and never cached.
type RateLimiter struct {
	counters     *CountersService
	budgets      domain.RateBudgets
	rng          ports.Rand
	unifiedReset bool
	logger       *slog.Logger
}

// NewRateLimiter with unifiedReset=false only runs the daily reset before
// follow checks.
func NewRateLimiter(counters *CountersService, budgets domain.RateBudgets, rng ports.Rand, unifiedReset bool, logger *slog.Logger) *RateLimiter {
	if budgets == nil {
		budgets = domain.DefaultRateBudgets()
	}

	return &RateLimiter{
		counters:     counters,
		budgets:      budgets,
		rng:          rng,
		unifiedReset: unifiedReset,
		logger:       logging.OrDiscard(logger),
	}
}

func (l *RateLimiter) CanPerform(ctx context.Context, kind domain.ActionKind) bool {
	if kind == domain.ActionFollow || l.unifiedReset {
		if _, err := l.counters.MaybeResetDaily(ctx); err != nil {
			l.logger.Warn("daily reset not persisted", "error", err)
		}
	}

	budget, ok := l.budgets[kind]
	if !ok {
		return true
	}

	ceiling := drawInRange(l.rng, budget)
	count := l.counters.Snapshot().Daily(kind)
	if count >= ceiling {
		l.logger.Debug("rate budget exhausted", "action", kind, "count", count, "ceiling", ceiling)
		return false
	}
	return true
}
