package services

import (
	"sort"
	"time"
)

// StreakCalculator derives consecutive-day streaks from activity timestamps
type StreakCalculator interface {
	CalculateStreaks(timestamps []time.Time, now time.Time) StreakResult
}

// DefaultStreakCalculator works on UTC calendar days.
type DefaultStreakCalculator struct{}

// NewStreakCalculator creates a streak calculator
func NewStreakCalculator() *DefaultStreakCalculator {
	return &DefaultStreakCalculator{}
}

// CalculateStreaks implements StreakCalculator. The current streak is zero
// unless the latest active day is today or yesterday relative to now.
func (DefaultStreakCalculator) CalculateStreaks(timestamps []time.Time, now time.Time) StreakResult {
	days := uniqueDays(timestamps)
	if len(days) == 0 {
		return StreakResult{}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if consecutive(days[i-1], days[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	today := utcDay(now)
	last := days[len(days)-1]
	if !last.Equal(today) && !last.Equal(today.AddDate(0, 0, -1)) {
		return StreakResult{CurrentStreak: 0, LongestStreak: longest}
	}

	current := 1
	for i := len(days) - 2; i >= 0; i-- {
		if !consecutive(days[i], days[i+1]) {
			break
		}
		current++
	}
	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func consecutive(prev, next time.Time) bool {
	return prev.AddDate(0, 0, 1).Equal(next)
}

func uniqueDays(timestamps []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(timestamps))
	days := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		day := utcDay(ts)
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
