package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/precieux0/instagram-repo2/internal/domain"
)

const barWidth = 24

type RenderOptions struct {
	Now time.Time
	// Budgets supplies the upper bound drawn against for each action kind.
	// Kinds without a budget are rendered as a plain count.
	Budgets domain.RateBudgets
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Growth Bot Status"),
		s.header.Render(fmt.Sprintf("updated: %s", formatRelative(status.UpdatedAt, opts.Now))),
		stateLine(status, s),
	}

	if status.LastError != "" {
		lines = append(lines, s.warning.Render("last error: "+status.LastError))
	}

	counters := []string{
		counterLine("follows", status.Counters.Follows, opts.Budgets, domain.ActionFollow, s),
		counterLine("likes", status.Counters.Likes, opts.Budgets, domain.ActionLike, s),
		counterLine("comments", status.Counters.Comments, opts.Budgets, domain.ActionComment, s),
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, counters...)))

	session := []string{
		s.detail.Render(fmt.Sprintf("sessions: %d", status.Counters.TotalSessions)),
		s.detail.Render(fmt.Sprintf("counters reset: %s", fallback(status.Counters.LastReset, "never"))),
		s.detail.Render(fmt.Sprintf("login attempts: %d", status.LoginAttempts)),
		s.detail.Render("last login: " + lastLoginLabel(status.LastLogin, opts.Now)),
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, session...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func stateLine(status application.Status, s styles) string {
	label := status.LifecycleState.Label()
	var styled string
	switch status.LifecycleState {
	case domain.StateConnected:
		styled = s.healthy.Render(label)
	case domain.StateActiveSession, domain.StateLoggingIn, domain.StateInitializing:
		styled = s.busy.Render(label)
	default:
		styled = s.warning.Render(label)
	}

	line := "state: " + styled
	if status.LifecycleState.NeedsOperator() {
		line += " " + s.warning.Render("[run reconnect after resolving the challenge]")
	}
	return line
}

func counterLine(name string, value int, budgets domain.RateBudgets, kind domain.ActionKind, s styles) string {
	label := s.counterKey.Render(fmt.Sprintf("%-9s", name+":"))
	budget, ok := budgets[kind]
	if !ok || budget.Max <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.counterVal.Render(fmt.Sprintf("%d", value)))
	}

	used := float64(value) / float64(budget.Max) * 100
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderProgressBar(used, barWidth, s),
		" ",
		s.counterVal.Render(fmt.Sprintf("%d/%d", value, budget.Max)),
	)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func lastLoginLabel(lastLogin *time.Time, now time.Time) string {
	if lastLogin == nil || lastLogin.IsZero() {
		return "never"
	}
	return formatRelative(*lastLogin, now)
}

func formatRelative(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() || at.After(now) {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed/time.Minute), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed/time.Hour), "hour") + " ago"
	default:
		return at.Format("15:04 on 02 Jan")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) == "" {
		return alt
	}
	return value
}
