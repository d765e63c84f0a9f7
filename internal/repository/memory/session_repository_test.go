package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()

	assert.False(t, repo.IsRevoked(id))

	repo.Revoke(id, time.Now().Add(time.Hour))
	assert.True(t, repo.IsRevoked(id))
	assert.False(t, repo.IsRevoked(uuid.New()))
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepositorySkipsExpired(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()

	repo.Revoke(id, time.Now().Add(-time.Minute))
	assert.False(t, repo.IsRevoked(id))
	assert.Equal(t, 0, repo.Count())
}
