package domain

import "time"

type ActionKind string

const (
	ActionFollow   ActionKind = "follow"
	ActionLike     ActionKind = "like"
	ActionComment  ActionKind = "comment"
	ActionUnfollow ActionKind = "unfollow"
)

// Counters is the durable record of daily action counts and lifecycle
// timestamps.
type Counters struct {
	DailyFollows  int
	DailyLikes    int
	DailyComments int
	LastReset     time.Time
	TotalSessions int
	LoginAttempts int
	LastLogin     *time.Time
}

func DefaultCounters(now time.Time) Counters {
	return Counters{LastReset: StartOfDay(now)}
}

// Daily returns the per-day count for kind. Unfollows are not tracked daily.
func (c Counters) Daily(kind ActionKind) int {
	switch kind {
	case ActionFollow:
		return c.DailyFollows
	case ActionLike:
		return c.DailyLikes
	case ActionComment:
		return c.DailyComments
	default:
		return 0
	}
}

// Increment bumps the daily counter for kind and reports whether kind is
// tracked at all.
func (c *Counters) Increment(kind ActionKind) bool {
	switch kind {
	case ActionFollow:
		c.DailyFollows++
	case ActionLike:
		c.DailyLikes++
	case ActionComment:
		c.DailyComments++
	default:
		return false
	}
	return true
}

// ResetIfNewDay zeroes the daily counters when now falls on a calendar day
// strictly later than LastReset.
func (c *Counters) ResetIfNewDay(now time.Time) bool {
	today := StartOfDay(now)
	if !today.After(StartOfDay(c.LastReset.In(now.Location()))) {
		return false
	}

	c.DailyFollows = 0
	c.DailyLikes = 0
	c.DailyComments = 0
	c.LastReset = today
	return true
}

func (c Counters) Clone() Counters {
	out := c
	if c.LastLogin != nil {
		lastLogin := *c.LastLogin
		out.LastLogin = &lastLogin
	}
	return out
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
