package memory

import (
	"time"

	"github.com/besmartbusiness/lawyer-app/pkg/dictation"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// RecordingRepository keeps in-flight dictation sessions in process memory.
// Sessions are transient; an abandoned one simply expires.
type RecordingRepository struct {
	cache *cache.Cache
}

func NewRecordingRepository() *RecordingRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &RecordingRepository{
		cache: c,
	}
}

func (r *RecordingRepository) Save(session *dictation.Session) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *RecordingRepository) Get(id uuid.UUID) (*dictation.Session, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*dictation.Session), true
	}
	return nil, false
}

func (r *RecordingRepository) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}

// ActiveForOwner reports whether the owner already has a session between
// start and a terminal state. At most one may be active at a time.
func (r *RecordingRepository) ActiveForOwner(ownerId uuid.UUID) (*dictation.Session, bool) {
	for _, item := range r.cache.Items() {
		session, ok := item.Object.(*dictation.Session)
		if !ok {
			continue
		}
		if session.OwnerId == ownerId && session.Active() {
			return session, true
		}
	}
	return nil, false
}
