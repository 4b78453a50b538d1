package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
	"github.com/sovenok-bot/sovenok/internal/store"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
	last  []domain.ChatMessage
}

func (f *fakeCompleter) Complete(_ context.Context, messages []domain.ChatMessage) (string, error) {
	f.calls++
	f.last = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestOrchestrator(completer domain.Completer) (*SessionOrchestrator, *store.ConversationStore, *store.QuotaLedger) {
	conversations := store.NewConversationStore()
	quota := store.NewQuotaLedger()
	o := NewSessionOrchestrator(completer, conversations, quota, NewSanitizer(), "персона", &config.Config{})
	o.sleep = func(time.Duration) {}
	return o, conversations, quota
}

func groupMention(text string) domain.Incoming {
	return domain.Incoming{
		ChatID:      -100,
		UserID:      42,
		MessageID:   7,
		DisplayName: "Вася",
		Text:        text,
		MentionsBot: true,
	}
}

func TestRespondHappyPathStripsReasoningAndUpdatesHistory(t *testing.T) {
	completer := &fakeCompleter{reply: "<think>ignore</think>Hello there"}
	o, conversations, _ := newTestOrchestrator(completer)

	in := groupMention("@sovenok_bot расскажи что-нибудь")
	out, err := o.Respond(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, in.ChatID, out.ChatID)
	assert.Equal(t, in.MessageID, out.ReplyTo)
	// Delivery may carry a mood emoji; the sanitized core must be there.
	assert.True(t, strings.HasPrefix(out.Text, "Hello there."), "got %q", out.Text)

	key := domain.UserKey{ChatID: in.ChatID, UserID: in.UserID}
	history := conversations.History(key)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Content: in.Text}, history[0])
	// History stores the sanitized text, never the decorated variant.
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleAssistant, Content: "Hello there."}, history[1])
}

func TestRespondComposesPersonaHistoryAndTaggedUtterance(t *testing.T) {
	completer := &fakeCompleter{reply: "Ответ."}
	o, conversations, _ := newTestOrchestrator(completer)

	in := groupMention("@sovenok_bot второй вопрос")
	key := domain.UserKey{ChatID: in.ChatID, UserID: in.UserID}
	conversations.Append(key, "первый вопрос", "первый ответ.")

	_, err := o.Respond(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, completer.last, 4)
	assert.Equal(t, domain.RoleSystem, completer.last[0].Role)
	assert.Equal(t, "персона", completer.last[0].Content)
	assert.Equal(t, "первый вопрос", completer.last[1].Content)
	assert.Equal(t, "первый ответ.", completer.last[2].Content)
	assert.Equal(t, "Вася: "+in.Text, completer.last[3].Content)
}

func TestRespondNotEngagedIsSilent(t *testing.T) {
	completer := &fakeCompleter{reply: "не должно случиться"}
	o, _, _ := newTestOrchestrator(completer)

	in := groupMention("обычное сообщение")
	in.MentionsBot = false

	_, err := o.Respond(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotEngaged)
	assert.Zero(t, completer.calls)
}

func TestRespondQuotaExhaustedSkipsBackend(t *testing.T) {
	completer := &fakeCompleter{reply: "не должно случиться"}
	o, _, quota := newTestOrchestrator(completer)

	in := groupMention("@sovenok_bot ещё раз")
	for i := 0; i < config.DailyMessageLimit; i++ {
		require.True(t, quota.CheckAndConsume(in.UserID, false))
	}

	out, err := o.Respond(context.Background(), in)
	require.NoError(t, err)
	assert.Zero(t, completer.calls)
	assert.Contains(t, out.Text, fmt.Sprintf("%d", config.DailyMessageLimit))
	assert.Contains(t, out.Text, "/referral")
}

func TestRespondBackendFailureYieldsApologyAndKeepsHistoryClean(t *testing.T) {
	completer := &fakeCompleter{err: &domain.BackendError{Provider: "deepseek", Timeout: true, Err: errors.New("deadline exceeded")}}
	o, conversations, _ := newTestOrchestrator(completer)

	in := groupMention("@sovenok_bot вопрос")
	out, err := o.Respond(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, config.BackendMaxAttempts, completer.calls)
	assert.Equal(t, apologyText, out.Text)

	key := domain.UserKey{ChatID: in.ChatID, UserID: in.UserID}
	assert.Zero(t, conversations.Len(key))
}

func TestRespondEmptySanitizedOutputGetsFallback(t *testing.T) {
	completer := &fakeCompleter{reply: "<think>только рассуждения</think>"}
	o, conversations, _ := newTestOrchestrator(completer)

	in := groupMention("@sovenok_bot ну что")
	out, err := o.Respond(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Text, fallbackText), "got %q", out.Text)

	key := domain.UserKey{ChatID: in.ChatID, UserID: in.UserID}
	history := conversations.History(key)
	require.Len(t, history, 2)
	assert.Equal(t, fallbackText, history[1].Content)
}

func TestRespondBusyThread(t *testing.T) {
	completer := &fakeCompleter{reply: "Ответ."}
	o, _, _ := newTestOrchestrator(completer)

	private := domain.Incoming{
		ChatID: 42, UserID: 42, DisplayName: "Вася",
		Text: "привет", ChatIsPrivate: true,
	}
	key := domain.UserKey{ChatID: private.ChatID, UserID: private.UserID}
	require.True(t, o.active.TryAcquire(key))
	defer o.active.Release(key)

	out, err := o.Respond(context.Background(), private)
	require.NoError(t, err)
	assert.Equal(t, busyText, out.Text)
	assert.Zero(t, completer.calls)

	// The same situation in a group is dropped silently.
	group := groupMention("@sovenok_bot привет")
	groupKey := domain.UserKey{ChatID: group.ChatID, UserID: group.UserID}
	require.True(t, o.active.TryAcquire(groupKey))
	defer o.active.Release(groupKey)

	_, err = o.Respond(context.Background(), group)
	assert.ErrorIs(t, err, domain.ErrNotEngaged)
}

func TestRespondExemptChatBypassesQuota(t *testing.T) {
	completer := &fakeCompleter{reply: "Ответ."}
	conversations := store.NewConversationStore()
	quota := store.NewQuotaLedger()
	cfg := &config.Config{ExemptChatIDs: []int64{-100}}
	o := NewSessionOrchestrator(completer, conversations, quota, NewSanitizer(), "персона", cfg)
	o.sleep = func(time.Duration) {}

	in := groupMention("@sovenok_bot привет")
	_, err := o.Respond(context.Background(), in)
	require.NoError(t, err)
	assert.Zero(t, quota.Status(in.UserID).Used)
}

func TestRespondPrivateChatHasNoReplyTo(t *testing.T) {
	completer := &fakeCompleter{reply: "Ответ."}
	o, _, _ := newTestOrchestrator(completer)

	out, err := o.Respond(context.Background(), domain.Incoming{
		ChatID: 42, UserID: 42, MessageID: 9,
		DisplayName: "Вася", Text: "привет", ChatIsPrivate: true,
	})
	require.NoError(t, err)
	assert.Zero(t, out.ReplyTo)
}
