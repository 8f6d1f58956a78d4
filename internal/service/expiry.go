package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/metrics"
	"github.com/AbrarBb/findie/internal/models"
	"github.com/AbrarBb/findie/pkg/logger"
)

type PostStore interface {
	ListExpired(ctx context.Context, before time.Time) ([]*models.Post, error)
	DeleteExpired(ctx context.Context, before time.Time) ([]*models.Post, error)
}

type SweepResult struct {
	SweptAt time.Time
	Posts   []*models.Post
	DryRun  bool
}

func (r *SweepResult) Count() int {
	return len(r.Posts)
}

func (r *SweepResult) Message() string {
	if r.DryRun {
		return fmt.Sprintf("Found %d expired posts, none deleted (dry run)", r.Count())
	}
	return fmt.Sprintf("Successfully processed %d expired posts", r.Count())
}

type ExpiryService struct {
	posts PostStore
	clock Clock
}

func NewExpiryService(posts PostStore, clock Clock) *ExpiryService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ExpiryService{posts: posts, clock: clock}
}

// Sweep deletes every post whose expiry is strictly before now and reports the deleted
// posts.
func (s *ExpiryService) Sweep(ctx context.Context) (*SweepResult, error) {
	log := logger.WithFunction(config.FunctionAutoExpirePosts)
	now := s.clock.Now()
	start := time.Now()

	deleted, err := s.posts.DeleteExpired(ctx, now)
	metrics.RecordSweep(len(deleted), err)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired posts: %w", err)
	}

	log.Info("Deleted expired posts",
		zap.Int("count", len(deleted)),
		zap.Time("before", now),
	)
	for _, p := range deleted {
		log.Debug("expired_post",
			zap.String("post_id", p.ID.String()),
			zap.String("title", p.Title),
			zap.String("user_id", p.UserID.String()),
		)
	}
	logger.Performance("expire_posts", time.Since(start), map[string]interface{}{"count": len(deleted)})

	return &SweepResult{SweptAt: now, Posts: deleted}, nil
}

// Preview reports the posts a sweep would delete right now without deleting them.
func (s *ExpiryService) Preview(ctx context.Context) (*SweepResult, error) {
	now := s.clock.Now()

	expired, err := s.posts.ListExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired posts: %w", err)
	}

	logger.WithFunction(config.FunctionAutoExpirePosts).
		Info("Found expired posts", zap.Int("count", len(expired)))

	return &SweepResult{SweptAt: now, Posts: expired, DryRun: true}, nil
}
