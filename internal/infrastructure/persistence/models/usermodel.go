package models

import "time"

// UserModel represents the database persistence model for users.
type UserModel struct {
	ID           uint      `gorm:"primarykey"`
	SID          string    `gorm:"uniqueIndex;not null;size:32"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	Name         string    `gorm:"size:100"`
	PasswordHash string    `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
