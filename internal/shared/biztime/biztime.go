// Package biztime centralizes time handling. All storage and transport use
// UTC; monthly usage buckets are keyed by the UTC calendar month.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MonthKey returns the usage-bucket key (YYYY-MM) for the given instant.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// CurrentMonthKey returns the usage-bucket key for the current UTC month.
func CurrentMonthKey() string {
	return MonthKey(NowUTC())
}
