package repository

import (
	"sync"
	"time"

	"github.com/ThisisBizness/Study-Buddy/pkg/chat"
)

type sessionEntry struct {
	session    *chat.Session
	lastAccess time.Time
}

// sessionRepository keeps browser chat sessions in memory. Sessions idle
// longer than the TTL are dropped on access; nothing is persisted, a restart
// clears every transcript.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
}

func NewSessionRepository(ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
	}
}

func (r *sessionRepository) Save(session *chat.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID()] = sessionEntry{
		session:    session,
		lastAccess: time.Now(),
	}
}

func (r *sessionRepository) GetByID(id string) (*chat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}

	if r.ttl > 0 && time.Since(entry.lastAccess) > r.ttl {
		delete(r.sessions, id)
		return nil, false
	}

	entry.lastAccess = time.Now()
	r.sessions[id] = entry
	return entry.session, true
}

func (r *sessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}
