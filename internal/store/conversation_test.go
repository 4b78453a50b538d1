package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
)

func TestConversationHistoryBounded(t *testing.T) {
	s := NewConversationStore()
	key := domain.UserKey{ChatID: 1, UserID: 2}

	for i := 0; i < 12; i++ {
		s.Append(key, fmt.Sprintf("вопрос %d", i), fmt.Sprintf("ответ %d", i))
		assert.LessOrEqual(t, s.Len(key), config.HistoryMaxEntries)
	}

	history := s.History(key)
	require.Len(t, history, config.HistoryMaxEntries)
	// Oldest exchanges dropped first: entries 0..6 are gone.
	assert.Equal(t, "вопрос 7", history[0].Content)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "ответ 11", history[len(history)-1].Content)
	assert.Equal(t, domain.RoleAssistant, history[len(history)-1].Role)
}

func TestConversationClear(t *testing.T) {
	s := NewConversationStore()
	key := domain.UserKey{ChatID: 1, UserID: 2}

	s.Append(key, "вопрос", "ответ")
	require.NotZero(t, s.Len(key))

	s.Clear(key)
	assert.Empty(t, s.History(key))
	assert.Zero(t, s.Len(key))
}

func TestConversationThreadsAreIndependent(t *testing.T) {
	s := NewConversationStore()
	a := domain.UserKey{ChatID: 1, UserID: 2}
	b := domain.UserKey{ChatID: 1, UserID: 3}

	s.Append(a, "от первого", "первому")
	assert.Zero(t, s.Len(b))
	assert.Empty(t, s.History(b))
}

func TestConversationHistoryReturnsCopy(t *testing.T) {
	s := NewConversationStore()
	key := domain.UserKey{ChatID: 1, UserID: 2}
	s.Append(key, "вопрос", "ответ")

	history := s.History(key)
	history[0].Content = "подменили"

	assert.Equal(t, "вопрос", s.History(key)[0].Content)
}
