package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s VerificationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s VerificationStatus) Valid() bool {
	return s == StatusPending || s.IsTerminal()
}

// ResolutionFor maps the outcome of an identity match to the status a pending row moves to.
func ResolutionFor(verified bool) VerificationStatus {
	if verified {
		return StatusApproved
	}
	return StatusRejected
}

type Verification struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	Status        VerificationStatus `json:"status"`
	ExtractedName *string            `json:"extracted_name,omitempty"`
	ExtractedDOB  *string            `json:"extracted_dob,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
