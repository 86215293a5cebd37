package status

import (
	"testing"
	"time"

	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConnectedStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	lastLogin := now.Add(-3 * time.Hour)

	output, err := Render(application.Status{
		LifecycleState: domain.StateConnected,
		Counters: application.StatusCounters{
			Follows:       20,
			Likes:         30,
			Comments:      2,
			TotalSessions: 3,
			LastReset:     "2026-02-14",
		},
		LoginAttempts: 1,
		LastLogin:     &lastLogin,
		UpdatedAt:     now.Add(-5 * time.Minute),
	}, RenderOptions{Now: now, Budgets: domain.DefaultRateBudgets()})

	require.NoError(t, err)
	assert.Contains(t, output, "Growth Bot Status")
	assert.Contains(t, output, "updated: 5 minutes ago")
	assert.Contains(t, output, "state: connected")
	assert.Contains(t, output, "20/40")
	assert.Contains(t, output, "30/120")
	assert.Contains(t, output, "comments:")
	assert.Contains(t, output, "sessions: 3")
	assert.Contains(t, output, "counters reset: 2026-02-14")
	assert.Contains(t, output, "login attempts: 1")
	assert.Contains(t, output, "last login: 3 hours ago")
	assert.NotContains(t, output, "last error")
}

func TestRenderChallengeStatusAsksForReconnect(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.Status{
		LifecycleState: domain.StateChallengeRequired,
		LastError:      "challenge_required",
		UpdatedAt:      now.Add(-30 * time.Second),
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "security challenge required")
	assert.Contains(t, output, "run reconnect")
	assert.Contains(t, output, "last error: challenge_required")
	assert.Contains(t, output, "updated: just now")
	assert.Contains(t, output, "last login: never")
	assert.Contains(t, output, "counters reset: never")
}

func TestCounterLineWithoutBudgetShowsPlainCount(t *testing.T) {
	line := counterLine("comments", 4, domain.DefaultRateBudgets(), domain.ActionComment, newStyles())

	assert.Contains(t, line, "comments:")
	assert.Contains(t, line, "4")
	assert.NotContains(t, line, "[")
}

func TestRenderProgressBarClampsOverflow(t *testing.T) {
	s := newStyles()

	full := renderProgressBar(250, 10, s)
	empty := renderProgressBar(-5, 10, s)

	assert.Contains(t, full, "==========")
	assert.NotContains(t, full, "-")
	assert.Contains(t, empty, "----------")
	assert.NotContains(t, empty, "=")
	assert.Empty(t, renderProgressBar(50, 0, s))
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "zero", at: time.Time{}, want: "unknown"},
		{name: "seconds", at: now.Add(-10 * time.Second), want: "just now"},
		{name: "one minute", at: now.Add(-time.Minute), want: "1 minute ago"},
		{name: "hours", at: now.Add(-150 * time.Minute), want: "2 hours ago"},
		{name: "days", at: now.Add(-50 * time.Hour), want: "09:00 on 12 Feb"},
		{name: "future", at: now.Add(time.Hour), want: "2026-02-14T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelative(tt.at, now))
		})
	}
}
