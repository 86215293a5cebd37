package metrics

import (
	"net/http"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "growthbot"

var lifecycleStates = []domain.LifecycleState{
	domain.StateInitializing,
	domain.StateLoggingIn,
	domain.StateConnected,
	domain.StateActiveSession,
	domain.StateLoginFailed,
	domain.StateChallengeRequired,
	domain.StateError,
}

// Recorder exports bot activity on its own registry so tests and the HTTP
// surface never share the global one.
type Recorder struct {
	registry *prometheus.Registry

	actions        *prometheus.CounterVec
	actionFailures *prometheus.CounterVec
	sessions       prometheus.Counter
	sessionEngaged prometheus.Histogram
	loginAttempts  *prometheus.CounterVec
	lifecycle      *prometheus.GaugeVec
}

var _ ports.Metrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	r := &Recorder{
		registry: registry,
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Engagement actions performed, by kind.",
		}, []string{"action"}),
		actionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_failures_total",
			Help:      "Engagement actions that failed, by kind and error kind.",
		}, []string{"action", "error_kind"}),
		sessions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "growth_sessions_total",
			Help:      "Growth sessions completed.",
		}),
		sessionEngaged: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "growth_session_engaged_targets",
			Help:      "Targets successfully engaged per growth session.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8},
		}),
		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Session establishment attempts, by outcome.",
		}, []string{"outcome"}),
		lifecycle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lifecycle_state",
			Help:      "1 for the current lifecycle state, 0 otherwise.",
		}, []string{"state"}),
	}
	r.StateChanged(domain.StateInitializing)
	return r
}

func (r *Recorder) ActionPerformed(kind domain.ActionKind) {
	r.actions.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) ActionFailed(kind domain.ActionKind, errKind domain.ErrorKind) {
	r.actionFailures.WithLabelValues(string(kind), string(errKind)).Inc()
}

func (r *Recorder) GrowthSessionCompleted(engaged int) {
	r.sessions.Inc()
	r.sessionEngaged.Observe(float64(engaged))
}

func (r *Recorder) LoginAttempted(outcome string) {
	r.loginAttempts.WithLabelValues(outcome).Inc()
}

func (r *Recorder) StateChanged(state domain.LifecycleState) {
	for _, s := range lifecycleStates {
		value := 0.0
		if s == state {
			value = 1
		}
		r.lifecycle.WithLabelValues(string(s)).Set(value)
	}
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
