package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository remembers logged-out session ids until their cookie would
// have expired anyway, so a copied cookie cannot be replayed after logout.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Entries carry their own expiry; purge expired items every 10 minutes
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Revoke(sessionID uuid.UUID, until time.Time) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	r.cache.Set(sessionID.String(), struct{}{}, ttl)
}

func (r *SessionRepository) IsRevoked(sessionID uuid.UUID) bool {
	_, found := r.cache.Get(sessionID.String())
	return found
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
