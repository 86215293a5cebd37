package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

const dateLayout = "2006-01-02"

type StatusCounters struct {
	Follows       int    `json:"follows"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	TotalSessions int    `json:"total_sessions"`
	LastReset     string `json:"last_reset"`
}

type Status struct {
	LifecycleState domain.LifecycleState `json:"lifecycle_state"`
	LastError      string                `json:"last_error"`
	Counters       StatusCounters        `json:"counters"`
	LoginAttempts  int                   `json:"login_attempts"`
	LastLogin      *time.Time            `json:"last_login"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Timestamp      time.Time             `json:"timestamp"`
}

type ReconnectResult struct {
	Attempted bool                  `json:"reconnect_attempted"`
	Succeeded bool                  `json:"reconnect_succeeded"`
	NewStatus domain.LifecycleState `json:"new_status"`
	Error     string                `json:"error,omitempty"`
}

// StatusPublisher holds the latest snapshot behind an atomic pointer. Writers
// build a fresh copy under mu and swap it in, so readers never see a record
// that is half updated.
type StatusPublisher struct {
	mu      sync.Mutex
	current atomic.Pointer[Status]
	clock   ports.Clock
	metrics ports.Metrics

	reconnect func(context.Context) error
}

func NewStatusPublisher(clock ports.Clock, metrics ports.Metrics) *StatusPublisher {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	p := &StatusPublisher{clock: clock, metrics: metrics}
	p.current.Store(&Status{LifecycleState: domain.StateInitializing, UpdatedAt: clock.Now()})
	return p
}

func (p *StatusPublisher) Snapshot() Status {
	snapshot := *p.current.Load()
	if snapshot.LastLogin != nil {
		lastLogin := *snapshot.LastLogin
		snapshot.LastLogin = &lastLogin
	}
	snapshot.Timestamp = p.clock.Now()
	return snapshot
}

func (p *StatusPublisher) State() domain.LifecycleState {
	return p.current.Load().LifecycleState
}

func (p *StatusPublisher) SetState(state domain.LifecycleState) {
	p.update(func(s *Status) {
		s.LifecycleState = state
	})
	p.metrics.StateChanged(state)
}

// SetRecovered moves to state and drops the last error.
func (p *StatusPublisher) SetRecovered(state domain.LifecycleState) {
	p.update(func(s *Status) {
		s.LifecycleState = state
		s.LastError = ""
	})
	p.metrics.StateChanged(state)
}

func (p *StatusPublisher) SetFailure(state domain.LifecycleState, message string) {
	p.update(func(s *Status) {
		s.LifecycleState = state
		s.LastError = message
	})
	p.metrics.StateChanged(state)
}

// PublishCounters copies the whole counters record, login fields included, in
// one swap.
func (p *StatusPublisher) PublishCounters(c domain.Counters) {
	c = c.Clone()
	p.update(func(s *Status) {
		s.Counters = StatusCounters{
			Follows:       c.DailyFollows,
			Likes:         c.DailyLikes,
			Comments:      c.DailyComments,
			TotalSessions: c.TotalSessions,
			LastReset:     formatDate(c.LastReset),
		}
		s.LoginAttempts = c.LoginAttempts
		s.LastLogin = c.LastLogin
	})
}

// ForceReconnect runs an operator-triggered authentication outside the main
// loop. It blocks while the scheduler holds the session.
func (p *StatusPublisher) ForceReconnect(ctx context.Context) ReconnectResult {
	if p.reconnect == nil {
		return ReconnectResult{NewStatus: p.State(), Error: "reconnect is not available"}
	}

	result := ReconnectResult{Attempted: true}
	if err := p.reconnect(ctx); err != nil {
		result.Error = err.Error()
	} else {
		result.Succeeded = true
	}
	result.NewStatus = p.State()
	return result
}

func (p *StatusPublisher) update(fn func(*Status)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := *p.current.Load()
	fn(&next)
	next.UpdatedAt = p.clock.Now()
	p.current.Store(&next)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
