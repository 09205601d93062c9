package models

import "time"

// ScanUsageModel represents the database persistence model for monthly scan
// counters. The (user_id, month_key) pair is unique; increments go through
// conditional writes, never read-modify-write.
type ScanUsageModel struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_scan_usage_user_month,priority:1"`
	MonthKey  string    `gorm:"not null;size:7;uniqueIndex:idx_scan_usage_user_month,priority:2"`
	Count     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ScanUsageModel) TableName() string {
	return "scan_usage"
}
