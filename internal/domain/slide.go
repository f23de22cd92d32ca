package domain

import "time"

// Slide is one entry of the home page carousel. Slides have no parent; they
// share the menu ordering rules through the tree envelope.
type Slide struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required,max=120"`
	ImageURL  string    `json:"image_url" validate:"required,url"`
	LinkURL   string    `json:"link_url" validate:"omitempty,url"`
	Order     int       `json:"order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Slide) TreeID() string        { return s.ID }
func (s Slide) TreeParentID() *string { return nil }
func (s Slide) TreeOrder() int        { return s.Order }
