// Package session owns per-user conversational state. The store is the
// sole owner of Session records; callers interact through GetOrCreate and
// the session's own lock.
package session

import (
	"sync"
	"time"

	"tripbot/models"
	"tripbot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session holds one user's conversation history plus the stage-agent
// configurations used for that user. History is append-only; ordering is
// the only guarantee.
type Session struct {
	ID        string
	UserID    string
	Selector  models.AgentConfig
	Formatter models.AgentConfig

	mu         sync.Mutex
	turns      []models.ConversationTurn
	lastActive time.Time
}

// Lock serializes turns for a single user. Two concurrent requests for
// the same user id must not interleave their history appends.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendTurn mutates history in place, preserving order. The caller must
// hold the session lock.
func (s *Session) AppendTurn(speaker models.Speaker, text string) {
	s.turns = append(s.turns, models.ConversationTurn{Speaker: speaker, Text: text})
	s.lastActive = time.Now()
}

// Turns returns a copy of the history. The caller must hold the session
// lock; the copy stays valid after release.
func (s *Session) Turns() []models.ConversationTurn {
	out := make([]models.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Store maps user ids to sessions. Access is safe for concurrent use;
// requests for different user ids never contend beyond the map lookup.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	selector  models.AgentConfig
	formatter models.AgentConfig
	idleTTL   time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewStore builds a store whose sessions start with the given stage-agent
// configurations. Sessions idle for longer than idleTTL are evicted by a
// background janitor; a zero idleTTL disables eviction.
func NewStore(selector, formatter models.AgentConfig, idleTTL time.Duration) *Store {
	st := &Store{
		sessions:  make(map[string]*Session),
		selector:  selector,
		formatter: formatter,
		idleTTL:   idleTTL,
		stop:      make(chan struct{}),
	}
	if idleTTL > 0 {
		go st.janitor()
	}
	return st
}

// GetOrCreate returns the session for userID, constructing it on first
// use. Idempotent per id: later calls return the same session by
// reference so history mutations are visible across requests.
func (st *Store) GetOrCreate(userID string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	// Re-check under the write lock so concurrent first turns for one
	// user cannot double-construct the session.
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	s = &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		Selector:   st.selector,
		Formatter:  st.formatter,
		lastActive: time.Now(),
	}
	st.sessions[userID] = s
	return s
}

// Get returns the session for userID if one exists.
func (st *Store) Get(userID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[userID]
	return s, ok
}

// Clear removes the session for userID, if any.
func (st *Store) Clear(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the eviction janitor.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *Store) janitor() {
	ticker := time.NewTicker(st.idleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			st.evictIdle(time.Now())
		}
	}
}

// evictIdle drops sessions whose last activity is older than the idle
// TTL. The store lock is never held while a session lock is taken: a
// session mid-turn holds its own lock for the whole collaborator call,
// and waiting on it under st.mu would stall every other user's lookup.
func (st *Store) evictIdle(now time.Time) {
	st.mu.RLock()
	snapshot := make(map[string]*Session, len(st.sessions))
	for id, s := range st.sessions {
		snapshot[id] = s
	}
	st.mu.RUnlock()

	stale := make(map[string]*Session)
	for id, s := range snapshot {
		// A session whose lock is held is mid-turn, hence active.
		if !s.mu.TryLock() {
			continue
		}
		idle := now.Sub(s.lastActive)
		s.mu.Unlock()
		if idle > st.idleTTL {
			stale[id] = s
		}
	}
	if len(stale) == 0 {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range stale {
		// The entry may have been cleared and recreated since the
		// snapshot; only evict the session judged idle.
		if st.sessions[id] != s {
			continue
		}
		delete(st.sessions, id)
		utils.GetLogger().Debug("Evicted idle session", zap.String("userID", id))
	}
}
