package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
	"github.com/sovenok-bot/sovenok/internal/store"
)

// Fixed user-visible texts for the failure paths.
const (
	apologyText  = "Произошла ошибка. Попробуйте позже."
	fallbackText = "Дай-ка подумаю об этом иначе… Спроси ещё раз, чуть другими словами."
	busyText     = "⏳ Дождитесь ответа на предыдущий запрос."
)

// SessionOrchestrator drives one inbound message through activation, quota,
// prompt composition, the backend call and sanitization. It owns all
// conversation state; handlers only translate transport events in and out.
type SessionOrchestrator struct {
	completer     domain.Completer
	conversations *store.ConversationStore
	quota         *store.QuotaLedger
	active        *store.ActiveRequests
	sanitizer     *Sanitizer
	persona       string
	cfg           *config.Config

	// sleep is swapped out in tests to skip real retry backoff.
	sleep func(time.Duration)
}

func NewSessionOrchestrator(
	completer domain.Completer,
	conversations *store.ConversationStore,
	quota *store.QuotaLedger,
	sanitizer *Sanitizer,
	persona string,
	cfg *config.Config,
) *SessionOrchestrator {
	return &SessionOrchestrator{
		completer:     completer,
		conversations: conversations,
		quota:         quota,
		active:        store.NewActiveRequests(),
		sanitizer:     sanitizer,
		persona:       persona,
		cfg:           cfg,
		sleep:         time.Sleep,
	}
}

// Respond handles one inbound message end to end and returns the outbound
// event. domain.ErrNotEngaged means the message should be dropped silently;
// every other path yields deliverable text, including quota refusals and
// the backend-failure apology.
func (o *SessionOrchestrator) Respond(ctx context.Context, in domain.Incoming) (domain.Outgoing, error) {
	if !ShouldEngage(in) {
		return domain.Outgoing{}, domain.ErrNotEngaged
	}

	key := domain.UserKey{ChatID: in.ChatID, UserID: in.UserID}
	if !o.active.TryAcquire(key) {
		if in.ChatIsPrivate {
			return o.outgoing(in, busyText), nil
		}
		return domain.Outgoing{}, domain.ErrNotEngaged
	}
	defer o.active.Release(key)

	if !o.quota.CheckAndConsume(in.UserID, o.cfg.IsExemptChat(in.ChatID)) {
		status := o.quota.Status(in.UserID)
		refusal := fmt.Sprintf(
			"🚫 Лимит %d сообщений в сутки исчерпан. Возвращайтесь завтра "+
				"или пригласите друзей командой /referral — каждый друг добавляет %d сообщения к дневному лимиту.",
			status.Limit, config.ReferralBonusPerInvite,
		)
		return o.outgoing(in, refusal), nil
	}

	messages := o.compose(key, in)

	raw, err := o.completeWithRetry(ctx, messages)
	if err != nil {
		slog.Error("backend call failed after retries",
			"error", err, "chat_id", in.ChatID, "user_id", in.UserID)
		return o.outgoing(in, apologyText), nil
	}

	clean := o.sanitizer.Sanitize(raw)
	if clean == "" {
		clean = fallbackText
	}

	// History stores the sanitized text, not the decorated delivery variant,
	// so future context stays clean.
	o.conversations.Append(key, in.Text, clean)

	return o.outgoing(in, o.sanitizer.Decorate(clean)), nil
}

// compose assembles persona + bounded history + the new utterance tagged
// with the sender's display name.
func (o *SessionOrchestrator) compose(key domain.UserKey, in domain.Incoming) []domain.ChatMessage {
	history := o.conversations.History(key)

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: o.persona})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: fmt.Sprintf("%s: %s", in.DisplayName, in.Text),
	})
	return messages
}

// completeWithRetry bounds each attempt with the request timeout and backs
// off linearly between attempts.
func (o *SessionOrchestrator) completeWithRetry(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= config.BackendMaxAttempts; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
		raw, err := o.completer.Complete(reqCtx, messages)
		cancel()
		if err == nil {
			return raw, nil
		}
		lastErr = err
		slog.Warn("backend attempt failed", "attempt", attempt, "error", err)
		if attempt < config.BackendMaxAttempts {
			o.sleep(time.Duration(attempt) * config.BackendRetryStep)
		}
	}
	return "", lastErr
}

func (o *SessionOrchestrator) outgoing(in domain.Incoming, text string) domain.Outgoing {
	out := domain.Outgoing{ChatID: in.ChatID, Text: text}
	if !in.ChatIsPrivate {
		out.ReplyTo = in.MessageID
	}
	return out
}
