// Package stores provides concrete registry store implementations
package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// SessionsStore implements the conversation session registry with an
// inverted visitor index for cross-session lookups.
type SessionsStore struct {
	sessions          map[string]*intel.ConversationSession
	visitorToSessions map[string][]string
	mu                sync.RWMutex
	logger            *logging.ChanneledLogger
}

// NewSessionsStore creates a new session registry store
func NewSessionsStore(logger *logging.ChanneledLogger) *SessionsStore {
	if logger != nil {
		logger.Cache().Info("Initializing sessions registry store")
	}
	return &SessionsStore{
		sessions:          make(map[string]*intel.ConversationSession),
		visitorToSessions: make(map[string][]string),
		logger:            logger,
	}
}

// GetSession retrieves session data by session ID
func (ss *SessionsStore) GetSession(sessionID string) (*intel.ConversationSession, bool) {
	start := time.Now()
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	session, found := ss.sessions[sessionID]
	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "get", "type", "session", "sessionId", sessionID, "hit", found, "duration", time.Since(start))
	}
	return session, found
}

// SetSession stores session data and maintains the inverted index
func (ss *SessionsStore) SetSession(session *intel.ConversationSession) {
	start := time.Now()
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if existing, exists := ss.sessions[session.SessionID]; exists {
		if existing.VisitorID != session.VisitorID {
			ss.removeFromVisitorIndex(existing.VisitorID, session.SessionID)
		}
	}

	ss.sessions[session.SessionID] = session
	ss.addToVisitorIndex(session.VisitorID, session.SessionID)

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "set", "type", "session", "sessionId", session.SessionID, "visitorId", session.VisitorID, "duration", time.Since(start))
	}
}

// RemoveSession removes a session and updates the inverted index
func (ss *SessionsStore) RemoveSession(sessionID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if session, exists := ss.sessions[sessionID]; exists {
		ss.removeFromVisitorIndex(session.VisitorID, sessionID)
		delete(ss.sessions, sessionID)

		if ss.logger != nil {
			ss.logger.Cache().Debug("Cache operation", "operation", "remove", "type", "session", "sessionId", sessionID, "visitorId", session.VisitorID)
		}
	}
}

// GetSessionsByVisitor returns all session IDs for a given visitor
func (ss *SessionsStore) GetSessionsByVisitor(visitorID string) []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	sessionIDs := ss.visitorToSessions[visitorID]
	result := make([]string, len(sessionIDs))
	copy(result, sessionIDs)
	return result
}

// AllSessions returns a point-in-time copy of every session pointer,
// ordered by start time.
func (ss *SessionsStore) AllSessions() []*intel.ConversationSession {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	result := make([]*intel.ConversationSession, 0, len(ss.sessions))
	for _, session := range ss.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})
	return result
}

// ActiveCount counts sessions that have not been finalized.
func (ss *SessionsStore) ActiveCount() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	count := 0
	for _, session := range ss.sessions {
		if !session.IsFinalized() {
			count++
		}
	}
	return count
}

// Count returns the total number of retained sessions.
func (ss *SessionsStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// EvictFinalizedBefore removes finalized sessions whose end time is
// older than the cutoff. Live sessions are never evicted. Returns the
// number of sessions removed.
func (ss *SessionsStore) EvictFinalizedBefore(cutoff time.Time) int {
	start := time.Now()
	ss.mu.Lock()
	defer ss.mu.Unlock()

	evicted := 0
	for sessionID, session := range ss.sessions {
		if session.EndedAt != nil && session.EndedAt.Before(cutoff) {
			ss.removeFromVisitorIndex(session.VisitorID, sessionID)
			delete(ss.sessions, sessionID)
			evicted++
		}
	}

	if ss.logger != nil && evicted > 0 {
		ss.logger.Cache().Info("Session retention sweep", "evicted", evicted, "remaining", len(ss.sessions), "duration", time.Since(start))
	}
	return evicted
}

// addToVisitorIndex adds a session to the visitor's session list.
// MUST be called with mu held.
func (ss *SessionsStore) addToVisitorIndex(visitorID, sessionID string) {
	sessions := ss.visitorToSessions[visitorID]
	for _, existing := range sessions {
		if existing == sessionID {
			return
		}
	}
	ss.visitorToSessions[visitorID] = append(sessions, sessionID)
}

// removeFromVisitorIndex removes a session from the visitor's session list.
// MUST be called with mu held.
func (ss *SessionsStore) removeFromVisitorIndex(visitorID, sessionID string) {
	sessions := ss.visitorToSessions[visitorID]
	for i, existing := range sessions {
		if existing == sessionID {
			sessions[i] = sessions[len(sessions)-1]
			ss.visitorToSessions[visitorID] = sessions[:len(sessions)-1]
			if len(ss.visitorToSessions[visitorID]) == 0 {
				delete(ss.visitorToSessions, visitorID)
			}
			break
		}
	}
}
