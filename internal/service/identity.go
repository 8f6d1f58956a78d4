package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/AbrarBb/findie/internal/metrics"
	"github.com/AbrarBb/findie/internal/models"
	"github.com/AbrarBb/findie/internal/repository"
	"github.com/AbrarBb/findie/pkg/logger"
)

var ErrMissingFields = errors.New("missing required fields")

const (
	MsgIdentityVerified = "Identity verified successfully!"
	MsgIdentityRejected = "Identity verification failed. Please check your information."
)

type IdentityStore interface {
	WithIdentityTx(ctx context.Context, fn func(v repository.VerificationWriter, u repository.UserWriter) error) error
}

type VerifyInput struct {
	Name          string
	DOB           string
	ExtractedText string
	UserID        uuid.UUID
}

type VerifyResult struct {
	NameMatch  bool
	DOBMatch   bool
	IsVerified bool
	// Transitioned counts the pending rows this call resolved. Zero means the user had
	// nothing pending, typically because an earlier call already resolved it.
	Transitioned int64
}

func (r *VerifyResult) Message() string {
	if r.IsVerified {
		return MsgIdentityVerified
	}
	return MsgIdentityRejected
}

// MatchIdentity checks the claimed name case-insensitively and the date of birth either
// verbatim or with dashes written as slashes.
func MatchIdentity(name, dob, extractedText string) (nameMatch, dobMatch bool) {
	nameMatch = strings.Contains(strings.ToLower(extractedText), strings.ToLower(name))
	dobMatch = strings.Contains(extractedText, dob) ||
		strings.Contains(extractedText, strings.ReplaceAll(dob, "-", "/"))
	return nameMatch, dobMatch
}

type IdentityService struct {
	store IdentityStore
}

func NewIdentityService(store IdentityStore) *IdentityService {
	return &IdentityService{store: store}
}

// Verify resolves the user's pending verification as approved or rejected. The status
// change and the user's verified flag are written in one transaction; the flag is set
// whenever the identity matches, even if no pending row was left to resolve.
func (s *IdentityService) Verify(ctx context.Context, in VerifyInput) (*VerifyResult, error) {
	if in.Name == "" || in.DOB == "" || in.ExtractedText == "" || in.UserID == uuid.Nil {
		return nil, ErrMissingFields
	}

	nameMatch, dobMatch := MatchIdentity(in.Name, in.DOB, in.ExtractedText)
	result := &VerifyResult{
		NameMatch:  nameMatch,
		DOBMatch:   dobMatch,
		IsVerified: nameMatch && dobMatch,
	}

	resolution := repository.Resolution{
		Status:        models.ResolutionFor(result.IsVerified),
		ExtractedName: in.Name,
		ExtractedDOB:  in.DOB,
	}

	err := s.store.WithIdentityTx(ctx, func(v repository.VerificationWriter, u repository.UserWriter) error {
		n, err := v.ResolvePending(ctx, in.UserID, resolution)
		if err != nil {
			return err
		}
		result.Transitioned = n

		if result.IsVerified {
			return u.MarkVerified(ctx, in.UserID)
		}
		return nil
	})
	metrics.RecordVerification(result.IsVerified, err)
	if err != nil {
		return nil, err
	}

	logger.Audit("identity_verification", in.UserID.String(), map[string]interface{}{
		"status":       string(resolution.Status),
		"name_match":   nameMatch,
		"dob_match":    dobMatch,
		"transitioned": result.Transitioned,
	})

	return result, nil
}
