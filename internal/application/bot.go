package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

type BotDeps struct {
	Client   ports.PlatformClient
	Counters ports.CountersRepository
	Sessions ports.SessionStore
	Clock    ports.Clock
	Sleeper  ports.Sleeper
	Rand     ports.Rand
	Metrics  ports.Metrics
	Logger   *slog.Logger
}

type BotConfig struct {
	Credentials  domain.Credentials
	Budgets      domain.RateBudgets
	UnifiedReset bool
	Session      SessionManagerConfig
	Scheduler    SchedulerConfig
}

func DefaultBotConfig(creds domain.Credentials) BotConfig {
	return BotConfig{
		Credentials:  creds,
		Budgets:      domain.DefaultRateBudgets(),
		UnifiedReset: true,
		Session:      DefaultSessionManagerConfig(creds),
		Scheduler:    DefaultSchedulerConfig(creds.Username),
	}
}

// Bot is the handle shared by the scheduler task and the monitoring surface.
type Bot struct {
	Status    *StatusPublisher
	Counters  *CountersService
	Limiter   *RateLimiter
	Sessions  *SessionManager
	Scheduler *Scheduler
}

// NewBot checks credentials, loads the persisted counters and wires the
// components together. Missing credentials are fatal.
func NewBot(ctx context.Context, deps BotDeps, cfg BotConfig) (*Bot, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}
	if deps.Client == nil {
		return nil, fmt.Errorf("startup: platform client is required")
	}
	if deps.Rand == nil {
		return nil, fmt.Errorf("startup: random source is required")
	}

	logger := logging.OrDiscard(deps.Logger)
	cfg.Session.Credentials = cfg.Credentials
	if cfg.Scheduler.Username == "" {
		cfg.Scheduler.Username = cfg.Credentials.Username
	}

	status := NewStatusPublisher(deps.Clock, deps.Metrics)
	counters := NewCountersService(deps.Counters, deps.Clock, status, logger.With("component", "counters"))
	counters.Load(ctx)

	limiter := NewRateLimiter(counters, cfg.Budgets, deps.Rand, cfg.UnifiedReset, logger.With("component", "limiter"))
	sessions := NewSessionManager(
		deps.Client,
		deps.Sessions,
		counters,
		status,
		deps.Rand,
		deps.Sleeper,
		deps.Metrics,
		cfg.Session,
		logger.With("component", "session"),
	)
	scheduler := NewScheduler(
		deps.Client,
		sessions,
		limiter,
		counters,
		status,
		deps.Rand,
		deps.Sleeper,
		deps.Clock,
		deps.Metrics,
		cfg.Scheduler,
		logger.With("component", "scheduler"),
	)
	status.reconnect = sessions.ForceReconnect

	return &Bot{
		Status:    status,
		Counters:  counters,
		Limiter:   limiter,
		Sessions:  sessions,
		Scheduler: scheduler,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	return b.Scheduler.Run(ctx)
}
