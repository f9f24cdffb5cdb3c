package repository

import "time"

// Timestamps are stored as UTC text so that range predicates compare
// lexically in chronological order.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	converted := t.UTC()
	return &converted
}
