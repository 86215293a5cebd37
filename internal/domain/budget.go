package domain

import (
	"fmt"
	"time"
)

// Range is an inclusive integer interval used for randomized ceilings.
type Range struct {
	Min int
	Max int
}

func (r Range) Validate() error {
	if r.Min < 0 {
		return fmt.Errorf("range min %d is negative", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("range max %d is below min %d", r.Max, r.Min)
	}
	return nil
}

// RateBudgets holds the ceiling range per action kind. A ceiling is drawn
// fresh from the range on every check.
type RateBudgets map[ActionKind]Range

func DefaultRateBudgets() RateBudgets {
	return RateBudgets{
		ActionFollow: {Min: 25, Max: 40},
		ActionLike:   {Min: 80, Max: 120},
	}
}

// DelayRange is an inclusive interval of whole seconds.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

func Seconds(min, max int) DelayRange {
	return DelayRange{Min: time.Duration(min) * time.Second, Max: time.Duration(max) * time.Second}
}
