// Package usage tracks per-user, per-calendar-month scan counters. Counters
// are created lazily at zero on the first scan of a month, only ever grow
// within a month, and are never deleted.
package usage

import "time"

// ScanUsage is one user's scan counter for one calendar month.
type ScanUsage struct {
	UserID    uint
	MonthKey  string // YYYY-MM, UTC
	Count     int
	UpdatedAt time.Time
}
