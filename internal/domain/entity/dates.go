// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// AddMonths shifts a date by n calendar months, clamping the day of month to
// the last day of the target month (Jan 31 + 1 month = Feb 28/29). Plain
// time.AddDate would normalize the overflow into the following month, which
// breaks due-date arithmetic for bills anchored at month end.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// BeginningOfMonth returns midnight on the first day of t's month.
func BeginningOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DateOnly truncates t to midnight, discarding the time-of-day component.
// Ledger dates have day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
