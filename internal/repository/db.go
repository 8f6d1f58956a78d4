package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so repositories can run on either.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VerificationWriter is the part of the verification repository used inside an identity
// transaction.
type VerificationWriter interface {
	ResolvePending(ctx context.Context, userID uuid.UUID, resolution Resolution) (int64, error)
}

// UserWriter is the part of the user repository used inside an identity transaction.
type UserWriter interface {
	MarkVerified(ctx context.Context, userID uuid.UUID) error
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Posts() *PostRepository {
	return NewPostRepository(s.pool)
}

func (s *Store) Users() *UserRepository {
	return NewUserRepository(s.pool)
}

func (s *Store) Verifications() *VerificationRepository {
	return NewVerificationRepository(s.pool)
}

// WithIdentityTx runs fn in a read-committed transaction. The transaction is committed
// when fn returns nil and rolled back otherwise.
func (s *Store) WithIdentityTx(ctx context.Context, fn func(v VerificationWriter, u UserWriter) error) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(NewVerificationRepository(tx), NewUserRepository(tx))
	})
	if err != nil {
		return fmt.Errorf("identity transaction: %w", err)
	}
	return nil
}
