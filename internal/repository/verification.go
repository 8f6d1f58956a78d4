package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AbrarBb/findie/internal/models"
)

var ErrVerificationNotFound = errors.New("verification not found")

// Resolution is the outcome written onto pending verification rows.
type Resolution struct {
	Status        models.VerificationStatus
	ExtractedName string
	ExtractedDOB  string
}

type VerificationRepository struct {
	db DBTX
}

func NewVerificationRepository(db DBTX) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, v *models.Verification) error {
	query := `
		INSERT INTO verifications (user_id, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	if v.Status == "" {
		v.Status = models.StatusPending
	}

	return r.db.QueryRow(ctx, query, v.UserID, v.Status).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// ResolvePending moves every pending row of the user to the resolution status and returns
// how many rows moved. The status filter is evaluated under the row lock, so two
// concurrent calls cannot both transition the same row.
func (r *VerificationRepository) ResolvePending(ctx context.Context, userID uuid.UUID, res Resolution) (int64, error) {
	query := `
		UPDATE verifications
		SET status = $2, extracted_name = $3, extracted_dob = $4, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, userID, string(res.Status), res.ExtractedName, res.ExtractedDOB)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func (r *VerificationRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*models.Verification, error) {
	query := `
		SELECT id, user_id, status, extracted_name, extracted_dob, created_at, updated_at
		FROM verifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	v := &models.Verification{}
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&v.ID, &v.UserID, &v.Status, &v.ExtractedName, &v.ExtractedDOB, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}

	return v, nil
}
