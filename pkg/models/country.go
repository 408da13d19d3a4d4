package models

import (
	"time"

	"github.com/google/uuid"
)

// Country is a managed, deduplicated country list entry. Lookups match on
// name, stored code, or a code derived from historical aliases, so the same
// country is never created twice under different spellings.
type Country struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         *string   `json:"code,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
