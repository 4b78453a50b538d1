package domain

import "context"

// Chat roles as the completion API expects them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged utterance in a completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserKey identifies one conversation thread: one user within one chat.
type UserKey struct {
	ChatID int64
	UserID int64
}

// Incoming is the inbound message event the transport layer hands to the core.
type Incoming struct {
	ChatID        int64
	UserID        int64
	MessageID     int
	DisplayName   string
	Text          string
	IsReplyToBot  bool
	MentionsBot   bool
	ChatIsPrivate bool
}

// Outgoing is what the core emits back for delivery. ReplyTo is zero when
// the message should not be sent as a reply.
type Outgoing struct {
	ChatID  int64
	ReplyTo int
	Text    string
}

// Completer is the language-model backend capability. Implementations wrap
// one provider's HTTP API and return the raw assistant text.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// QuotaStatus is a point-in-time read of one user's daily allowance.
type QuotaStatus struct {
	Limit     int
	Used      int
	Remaining int
}
