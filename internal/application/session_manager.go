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

const challengeMessage = "security challenge required: verify the account in the official app, then trigger /reconnect"

type SessionManagerConfig struct {
	Credentials domain.Credentials
	Profiles    []domain.DeviceProfile
	LoginDelay  domain.DelayRange
}

func DefaultSessionManagerConfig(creds domain.Credentials) SessionManagerConfig {
	return SessionManagerConfig{
		Credentials: creds,
		Profiles:    domain.DefaultDeviceProfiles(),
		LoginDelay:  domain.Seconds(20, 60),
	}
}

// SessionManager owns the authenticated platform handle. Every session
// operation runs under mu, which serializes the scheduler with the operator
// reconnect side channel.
type SessionManager struct {
	mu       sync.Mutex
	client   ports.Authenticator
	store    ports.SessionStore
	counters *CountersService
	status   *StatusPublisher
	rng      ports.Rand
	sleeper  ports.Sleeper
	metrics  ports.Metrics
	logger   *slog.Logger
	cfg      SessionManagerConfig

	phase domain.SessionPhase
}

func NewSessionManager(
	client ports.Authenticator,
	store ports.SessionStore,
	counters *CountersService,
	status *StatusPublisher,
	rng ports.Rand,
	sleeper ports.Sleeper,
	metrics ports.Metrics,
	cfg SessionManagerConfig,
	logger *slog.Logger,
) *SessionManager {
	if sleeper == nil {
		sleeper = ports.SystemSleeper{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = domain.DefaultDeviceProfiles()
	}

	return &SessionManager{
		client:   client,
		store:    store,
		counters: counters,
		status:   status,
		rng:      rng,
		sleeper:  sleeper,
		metrics:  metrics,
		logger:   logging.OrDiscard(logger).With("username", cfg.Credentials.Username),
		cfg:      cfg,
		phase:    domain.PhaseNoSession,
	}
}

func (m *SessionManager) Phase() domain.SessionPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// EnsureConnected makes the session usable: resume a stored session, otherwise
// log in fresh. After a security challenge it refuses without touching the
// platform until ForceReconnect is called.
func (m *SessionManager) EnsureConnected(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase.Usable() {
		return nil
	}
	if m.phase == domain.PhaseChallengeRequired {
		return fmt.Errorf("session parked until operator reconnect: %w", domain.ErrChallengeRequired)
	}

	if m.resumeLocked(ctx) {
		return nil
	}
	return m.authenticateLocked(ctx)
}

// Resume tries the persisted session once. A rejected session is deleted and
// never retried.
func (m *SessionManager) Resume(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resumeLocked(ctx)
}

func (m *SessionManager) Authenticate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateLocked(ctx)
}

// ForceReconnect is the operator path out of any state, challenge included.
func (m *SessionManager) ForceReconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("operator reconnect requested", "phase", m.phase)
	return m.authenticateLocked(ctx)
}

// Invalidate drops a session the platform rejected mid-use so the next
// EnsureConnected logs in again.
func (m *SessionManager) Invalidate(ctx context.Context, cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == domain.PhaseChallengeRequired {
		return
	}

	m.logger.Info("session invalidated", "error", cause)
	m.phase = domain.PhaseNoSession
	m.deleteStoredLocked(ctx)
	m.status.SetState(domain.StateLoggingIn)
}

// MarkChallenged parks the session after the platform raised a challenge
// outside of login.
func (m *SessionManager) MarkChallenged(cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Error("security challenge raised", "error", cause)
	m.phase = domain.PhaseChallengeRequired
	m.status.SetFailure(domain.StateChallengeRequired, challengeMessage)
}

func (m *SessionManager) resumeLocked(ctx context.Context) bool {
	blob, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			m.logger.Warn("stored session unreadable", "error", err)
		}
		m.phase = domain.PhaseNeedsFreshLogin
		return false
	}

	m.phase = domain.PhaseAttemptingResume
	m.status.SetState(domain.StateLoggingIn)

	err = m.client.LoadSession(blob)
	if err == nil {
		_, err = m.client.CurrentAccount(ctx)
	}
	if err != nil {
		m.phase = domain.PhaseNeedsFreshLogin
		if ctx.Err() != nil {
			return false
		}
		m.logger.Info("stored session rejected, falling back to fresh login", "error", err)
		m.deleteStoredLocked(ctx)
		return false
	}

	m.phase = domain.PhaseResumed
	m.status.SetRecovered(domain.StateConnected)
	m.metrics.LoginAttempted("resumed")
	m.logger.Info("stored session resumed")
	return true
}

func (m *SessionManager) authenticateLocked(ctx context.Context) error {
	if err := m.cfg.Credentials.Validate(); err != nil {
		m.phase = domain.PhaseLoginFailed
		m.status.SetFailure(domain.StateLoginFailed, err.Error())
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}

	m.phase = domain.PhaseAuthenticating
	m.status.SetState(domain.StateLoggingIn)
	if err := m.counters.RecordLoginAttempt(ctx); err != nil {
		m.logger.Warn("login attempt not persisted", "error", err)
	}

	profile := m.cfg.Profiles[m.rng.IntN(len(m.cfg.Profiles))]
	m.client.ApplyProfile(profile)

	delay := drawDelay(m.rng, m.cfg.LoginDelay)
	m.logger.Info("logging in", "device", profile.Model, "delay", delay)
	if err := m.sleeper.Sleep(ctx, delay); err != nil {
		m.phase = domain.PhaseNoSession
		return err
	}

	if err := m.client.Login(ctx, m.cfg.Credentials.Username, m.cfg.Credentials.Password); err != nil {
		if domain.Classify(err) == domain.ErrorKindChallenge {
			m.phase = domain.PhaseChallengeRequired
			m.status.SetFailure(domain.StateChallengeRequired, challengeMessage)
			m.metrics.LoginAttempted("challenge")
			m.logger.Error("login blocked by security challenge", "error", err)
			return fmt.Errorf("authenticate: %w", err)
		}

		m.phase = domain.PhaseLoginFailed
		m.status.SetFailure(domain.StateLoginFailed, err.Error())
		m.metrics.LoginAttempted("failed")
		m.logger.Error("login failed", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}

	m.persistSessionLocked(ctx)
	if err := m.counters.RecordLogin(ctx); err != nil {
		m.logger.Warn("login time not persisted", "error", err)
	}

	m.phase = domain.PhaseConnected
	m.status.SetRecovered(domain.StateConnected)
	m.metrics.LoginAttempted("success")
	m.logger.Info("logged in")
	return nil
}

func (m *SessionManager) persistSessionLocked(ctx context.Context) {
	blob, err := m.client.DumpSession()
	if err != nil {
		m.logger.Warn("session not serialized", "error", err)
		return
	}
	if err := m.store.Save(ctx, blob); err != nil {
		m.logger.Warn("session not persisted", "error", err)
	}
}

func (m *SessionManager) deleteStoredLocked(ctx context.Context) {
	if err := m.store.Delete(ctx); err != nil {
		m.logger.Warn("stale session not deleted", "error", err)
	}
}
