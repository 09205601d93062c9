package models

import "time"

// SubscriptionModel represents the database persistence model for
// subscriptions. One row per user, replaced wholesale on plan changes.
type SubscriptionModel struct {
	ID           uint       `gorm:"primarykey"`
	SID          string     `gorm:"uniqueIndex;not null;size:32"`
	UserID       uint       `gorm:"uniqueIndex;not null"`
	Plan         string     `gorm:"not null;size:20"`
	Status       string     `gorm:"not null;size:20"`
	SubscribedAt time.Time  `gorm:"not null"`
	ExpiresAt    *time.Time
	OrderID      string     `gorm:"size:64"`
	PaymentID    string     `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
