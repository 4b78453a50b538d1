package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sovenok-bot/sovenok/internal/domain"
	"github.com/sovenok-bot/sovenok/internal/service"
	tg "github.com/sovenok-bot/sovenok/internal/telegram"
)

// HandleText routes every non-command text message. Admin console input is
// intercepted first; everything else goes through the orchestrator.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	if msg.Chat.Type == "private" && h.console.Active(msg.From.ID) {
		if reply, ok := h.console.Input(msg.From.ID, msg.Text); ok {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: msg.Chat.ID, Text: reply})
			return
		}
	}

	in := h.incoming(msg)
	if !service.ShouldEngage(in) {
		return
	}

	stopTyping := tg.StartTyping(ctx, b, msg.Chat.ID)
	defer stopTyping()

	out, err := h.orchestrator.Respond(ctx, in)
	if err != nil {
		if !errors.Is(err, domain.ErrNotEngaged) {
			slog.Error("respond failed", "error", err, "chat_id", msg.Chat.ID)
		}
		return
	}

	if err := tg.SendLongMessage(ctx, b, out.ChatID, out.Text, out.ReplyTo); err != nil {
		slog.Error("send response", "error", err, "chat_id", out.ChatID)
	}
}

// incoming translates a Telegram message into the core's inbound event.
// Captioned media uses the caption as its text surrogate; pure media stays
// textless and never engages.
func (h *Handler) incoming(msg *models.Message) domain.Incoming {
	text := msg.Text
	if text == "" && msg.Caption != "" {
		text = msg.Caption
	}

	isReplyToBot := msg.ReplyToMessage != nil &&
		msg.ReplyToMessage.From != nil &&
		msg.ReplyToMessage.From.ID == h.botID

	mentionsBot := h.botUsername != "" &&
		strings.Contains(strings.ToLower(text), "@"+strings.ToLower(h.botUsername))

	displayName := msg.From.FirstName
	if displayName == "" {
		displayName = msg.From.Username
	}

	return domain.Incoming{
		ChatID:        msg.Chat.ID,
		UserID:        msg.From.ID,
		MessageID:     msg.ID,
		DisplayName:   displayName,
		Text:          text,
		IsReplyToBot:  isReplyToBot,
		MentionsBot:   mentionsBot,
		ChatIsPrivate: msg.Chat.Type == "private",
	}
}
