package jsonstate

import (
	"fmt"
	"strings"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
)

const dateLayout = "2006-01-02"

// Layouts accepted for timestamps written by older builds, most specific
// first. The last two cover naive ISO-8601 timestamps without a zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	dateLayout,
}

type stateSchema struct {
	DailyFollows  int     `json:"daily_follows"`
	DailyLikes    int     `json:"daily_likes"`
	DailyComments int     `json:"daily_comments"`
	LastReset     string  `json:"last_reset"`
	TotalSessions int     `json:"total_sessions"`
	LoginAttempts int     `json:"login_attempts"`
	LastLogin     *string `json:"last_login"`
}

func toSchema(c domain.Counters) stateSchema {
	s := stateSchema{
		DailyFollows:  c.DailyFollows,
		DailyLikes:    c.DailyLikes,
		DailyComments: c.DailyComments,
		TotalSessions: c.TotalSessions,
		LoginAttempts: c.LoginAttempts,
	}
	if !c.LastReset.IsZero() {
		s.LastReset = c.LastReset.Format(dateLayout)
	}
	if c.LastLogin != nil {
		lastLogin := c.LastLogin.Format(time.RFC3339Nano)
		s.LastLogin = &lastLogin
	}
	return s
}

func fromSchema(s stateSchema, loc *time.Location) (domain.Counters, error) {
	if s.DailyFollows < 0 || s.DailyLikes < 0 || s.DailyComments < 0 || s.TotalSessions < 0 || s.LoginAttempts < 0 {
		return domain.Counters{}, fmt.Errorf("negative counter: %w", domain.ErrCorruptState)
	}

	lastReset, err := parseTime(s.LastReset, loc)
	if err != nil {
		return domain.Counters{}, fmt.Errorf("last_reset: %w", err)
	}

	c := domain.Counters{
		DailyFollows:  s.DailyFollows,
		DailyLikes:    s.DailyLikes,
		DailyComments: s.DailyComments,
		LastReset:     domain.StartOfDay(lastReset),
		TotalSessions: s.TotalSessions,
		LoginAttempts: s.LoginAttempts,
	}
	if lastReset.IsZero() {
		c.LastReset = time.Time{}
	}

	if s.LastLogin != nil && strings.TrimSpace(*s.LastLogin) != "" {
		lastLogin, err := parseTime(*s.LastLogin, loc)
		if err != nil {
			return domain.Counters{}, fmt.Errorf("last_login: %w", err)
		}
		c.LastLogin = &lastLogin
	}

	return c, nil
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q: %w", raw, domain.ErrCorruptState)
}
