package store

import (
	"sync"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
)

// ConversationStore holds the bounded per-thread message history. All state
// is in-memory and lost on restart.
type ConversationStore struct {
	mu        sync.RWMutex
	histories map[domain.UserKey][]domain.ChatMessage
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		histories: make(map[domain.UserKey][]domain.ChatMessage),
	}
}

// History returns a copy of the thread's history, empty if none exists.
func (s *ConversationStore) History(key domain.UserKey) []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.histories[key]
	out := make([]domain.ChatMessage, len(history))
	copy(out, history)
	return out
}

// Append records one completed exchange and drops the oldest entries once
// the history exceeds its bound.
func (s *ConversationStore) Append(key domain.UserKey, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.histories[key],
		domain.ChatMessage{Role: domain.RoleUser, Content: userText},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: assistantText},
	)
	if len(history) > config.HistoryMaxEntries {
		history = history[len(history)-config.HistoryMaxEntries:]
	}
	s.histories[key] = history
}

// Clear removes the thread entirely.
func (s *ConversationStore) Clear(key domain.UserKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, key)
}

// Len reports the current history length for one thread.
func (s *ConversationStore) Len(key domain.UserKey) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories[key])
}
