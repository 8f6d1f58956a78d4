package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AbrarBb/findie/internal/models"
)

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query, post.Title, post.UserID, post.ExpiresAt).Scan(&post.ID)
}

// ListExpired returns the posts with expires_at strictly before the given instant, with
// their owner's email and name.
func (r *PostRepository) ListExpired(ctx context.Context, before time.Time) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.user_id, p.expires_at, u.email, u.name
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.expires_at < $1
		ORDER BY p.expires_at
	`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}

	return collectPosts(rows)
}

// DeleteExpired removes every post with expires_at strictly before the given instant and
// returns exactly the rows it removed. Selection and deletion are a single statement.
func (r *PostRepository) DeleteExpired(ctx context.Context, before time.Time) ([]*models.Post, error) {
	query := `
		WITH expired AS (
			DELETE FROM posts
			WHERE expires_at < $1
			RETURNING id, title, user_id, expires_at
		)
		SELECT e.id, e.title, e.user_id, e.expires_at, u.email, u.name
		FROM expired e
		LEFT JOIN users u ON u.id = e.user_id
		ORDER BY e.expires_at
	`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}

	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]*models.Post, error) {
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, &p.Title, &p.UserID, &p.ExpiresAt, &p.OwnerEmail, &p.OwnerName); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
