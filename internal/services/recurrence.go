package services

import (
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
)

// NextOccurrence returns when a recurring reminder should next fire after it
// was completed at completedAt, or nil for one-off reminders. Steps are taken
// on the wall clock in location so a 08:00 pill stays at 08:00 across DST.
// Occurrences that already passed by completedAt are skipped.
func NextOccurrence(reminder models.Reminder, completedAt time.Time, location *time.Location) *time.Time {
	if !reminder.IsRecurring || reminder.RecurringPattern == nil {
		return nil
	}

	step, ok := recurrenceStep(*reminder.RecurringPattern)
	if !ok {
		return nil
	}

	scheduled := reminder.ScheduledTime.In(location)
	for n := 1; ; n++ {
		next := step(scheduled, n)
		if next.After(completedAt) {
			return &next
		}
	}
}

func recurrenceStep(pattern models.RecurringPattern) (func(time.Time, int) time.Time, bool) {
	switch pattern {
	case models.RecurringDaily:
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }, true
	case models.RecurringWeekly:
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }, true
	case models.RecurringMonthly:
		return addMonths, true
	}
	return nil, false
}

// addMonths moves t forward n calendar months, clamping the day to the last
// day of the target month so Jan 31 becomes Feb 28 or 29 rather than Mar 2.
func addMonths(t time.Time, n int) time.Time {
	year, month, date := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), min(date, lastDay), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
