package models

import "time"

// CardModel represents the database persistence model for contact cards.
// This is the anti-corruption layer between domain and database.
type CardModel struct {
	ID            uint      `gorm:"primarykey"`
	SID           string    `gorm:"uniqueIndex;not null;size:32"`
	UserID        uint      `gorm:"not null;index:idx_cards_user_created,priority:1"`
	Name          string    `gorm:"size:255"`
	JobTitle      string    `gorm:"size:255"`
	Company       string    `gorm:"size:255"`
	Email         string    `gorm:"size:255"`
	Phone         string    `gorm:"size:64"`
	Website       string    `gorm:"size:500"`
	Address       string    `gorm:"size:1000"`
	Notes         string    `gorm:"type:text"`
	FrontImageURL string    `gorm:"size:500"`
	BackImageURL  string    `gorm:"size:500"`
	RawTextFront  string    `gorm:"type:text"`
	RawTextBack   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"index:idx_cards_user_created,priority:2"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (CardModel) TableName() string {
	return "cards"
}
