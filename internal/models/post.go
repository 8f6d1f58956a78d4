package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a marketplace listing. Owner fields are filled from users when the post is
// read together with its owner.
type Post struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	UserID     uuid.UUID `json:"user_id"`
	ExpiresAt  time.Time `json:"expires_at"`
	OwnerEmail *string   `json:"owner_email,omitempty"`
	OwnerName  *string   `json:"owner_name,omitempty"`
}

// IsExpired reports whether the post is past its expiry at now. A post expiring exactly
// at now is still visible.
func (p *Post) IsExpired(now time.Time) bool {
	return p.ExpiresAt.Before(now)
}
