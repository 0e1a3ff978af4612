package memory

import (
	"context"
	"sync"

	"github.com/konigunited/restdelbot/internal/domain"
)

// SessionStore keeps sessions in process memory. Used when no redis address is configured.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Get(_ context.Context, conversationID string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[conversationID]
	if !ok {
		return domain.Session{ConversationID: conversationID}, nil
	}
	return session, nil
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ConversationID] = session
	return nil
}
