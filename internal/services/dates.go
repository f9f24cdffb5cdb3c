package services

import (
	"database/sql"
	"errors"
	"math"
	"time"
)

const (
	defaultWindowDays = 7
	maxWindowDays     = 365
	day               = 24 * time.Hour
)

func startOfDay(t time.Time) time.Time {
	year, month, date := t.Date()
	return time.Date(year, month, date, 0, 0, 0, 0, t.Location())
}

// dayBounds returns local midnight of now's day and the following midnight.
func dayBounds(now time.Time, location *time.Location) (time.Time, time.Time) {
	start := startOfDay(now.In(location))
	return start, start.AddDate(0, 0, 1)
}

// windowDays defaults non-positive windows and caps the rest at a year.
func windowDays(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	return min(days, maxWindowDays)
}

// windowStart is the start of the trailing window of days calendar days
// ending at now.
func windowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -windowDays(days))
}

// percent rounds part/whole*100 half away from zero and is 0 for an empty whole.
func percent(part int, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
