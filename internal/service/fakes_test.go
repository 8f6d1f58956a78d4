package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AbrarBb/findie/internal/models"
	"github.com/AbrarBb/findie/internal/repository"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memPosts keeps posts in memory and applies the same strict "before" filter as the
// postgres repository.
type memPosts struct {
	mu      sync.Mutex
	posts   []*models.Post
	err     error
	deletes int
}

func (m *memPosts) ListExpired(_ context.Context, before time.Time) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.Post, 0)
	for _, p := range m.posts {
		if p.IsExpired(before) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPosts) DeleteExpired(_ context.Context, before time.Time) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.err != nil {
		return nil, m.err
	}
	kept := make([]*models.Post, 0, len(m.posts))
	deleted := make([]*models.Post, 0)
	for _, p := range m.posts {
		if p.IsExpired(before) {
			deleted = append(deleted, p)
		} else {
			kept = append(kept, p)
		}
	}
	m.posts = kept
	return deleted, nil
}

// memIdentityStore models the verifications and users tables. A failed transaction
// leaves both untouched.
type memIdentityStore struct {
	statuses   map[uuid.UUID][]models.VerificationStatus
	verified   map[uuid.UUID]bool
	resolveErr error
	markErr    error
	txCalls    int
	markCalls  int
	lastRes    repository.Resolution
}

func newMemIdentityStore() *memIdentityStore {
	return &memIdentityStore{
		statuses: map[uuid.UUID][]models.VerificationStatus{},
		verified: map[uuid.UUID]bool{},
	}
}

func (m *memIdentityStore) addPending(userID uuid.UUID) {
	m.statuses[userID] = append(m.statuses[userID], models.StatusPending)
}

type memTx struct {
	store    *memIdentityStore
	statuses map[uuid.UUID][]models.VerificationStatus
	verified map[uuid.UUID]bool
}

func (t *memTx) ResolvePending(_ context.Context, userID uuid.UUID, res repository.Resolution) (int64, error) {
	if t.store.resolveErr != nil {
		return 0, t.store.resolveErr
	}
	t.store.lastRes = res
	var n int64
	rows := append([]models.VerificationStatus(nil), t.statuses[userID]...)
	for i, s := range rows {
		if s == models.StatusPending {
			rows[i] = res.Status
			n++
		}
	}
	t.statuses[userID] = rows
	return n, nil
}

func (t *memTx) MarkVerified(_ context.Context, userID uuid.UUID) error {
	t.store.markCalls++
	if t.store.markErr != nil {
		return t.store.markErr
	}
	t.verified[userID] = true
	return nil
}

func (m *memIdentityStore) WithIdentityTx(_ context.Context, fn func(v repository.VerificationWriter, u repository.UserWriter) error) error {
	m.txCalls++
	tx := &memTx{
		store:    m,
		statuses: map[uuid.UUID][]models.VerificationStatus{},
		verified: map[uuid.UUID]bool{},
	}
	for k, v := range m.statuses {
		tx.statuses[k] = v
	}
	for k, v := range m.verified {
		tx.verified[k] = v
	}
	if err := fn(tx, tx); err != nil {
		return err
	}
	m.statuses = tx.statuses
	m.verified = tx.verified
	return nil
}
