package service

import (
	"strings"

	"github.com/sovenok-bot/sovenok/internal/domain"
)

// ShouldEngage decides whether an inbound message warrants a response.
//
// Group chats engage only on a reply to the bot's own message or an
// @-mention of its handle. Private chats engage on any non-command text.
// Messages without text (pure media with no caption and no transcription)
// never engage. The function is pure.
func ShouldEngage(in domain.Incoming) bool {
	text := strings.TrimSpace(in.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return false
	}
	if in.ChatIsPrivate {
		return true
	}
	return in.IsReplyToBot || in.MentionsBot
}
