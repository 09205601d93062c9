// Package dto defines the transport shapes for card operations.
package dto

import (
	"time"

	"captr/internal/domain/card"
)

// CardDTO is the API representation of a stored card. Field names mirror the
// stored card schema used by the mobile client.
type CardDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	JobTitle      string    `json:"job_title"`
	Company       string    `json:"company"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Website       string    `json:"website"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	FrontImageURL string    `json:"front_image_url"`
	BackImageURL  string    `json:"back_image_url"`
	RawTextFront  string    `json:"raw_text_front"`
	RawTextBack   string    `json:"raw_text_back"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromCard converts a domain card to its API representation.
func FromCard(c *card.Card) *CardDTO {
	f := c.Fields()
	return &CardDTO{
		ID:            c.SID(),
		Name:          f.Name,
		JobTitle:      f.JobTitle,
		Company:       f.Company,
		Email:         f.Email,
		Phone:         f.Phone,
		Website:       f.Website,
		Address:       f.Address,
		Notes:         f.Notes,
		FrontImageURL: f.FrontImageURL,
		BackImageURL:  f.BackImageURL,
		RawTextFront:  f.RawTextFront,
		RawTextBack:   f.RawTextBack,
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

// FromCards converts a slice of domain cards.
func FromCards(cards []*card.Card) []*CardDTO {
	out := make([]*CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, FromCard(c))
	}
	return out
}
