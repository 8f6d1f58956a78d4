package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationStatus(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())

	assert.True(t, StatusPending.Valid())
	assert.False(t, VerificationStatus("expired").Valid())

	assert.Equal(t, StatusApproved, ResolutionFor(true))
	assert.Equal(t, StatusRejected, ResolutionFor(false))
}

func TestPost_IsExpired(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Post{ExpiresAt: now.Add(-time.Second)}).IsExpired(now))
	assert.False(t, (&Post{ExpiresAt: now}).IsExpired(now))
	assert.False(t, (&Post{ExpiresAt: now.Add(time.Hour)}).IsExpired(now))
}
