package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sovenok-bot/sovenok/internal/domain"
)

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	status := h.quota.Status(msg.From.ID)
	historyLen := h.conversations.Len(domain.UserKey{
		ChatID: msg.Chat.ID,
		UserID: msg.From.ID,
	})

	text := fmt.Sprintf(
		"📊 Сегодня: %d из %d сообщений, осталось %d.\n"+
			"💬 В памяти разговора: %d реплик.\n\n"+
			"Лимит можно увеличить: /referral",
		status.Used, status.Limit, status.Remaining, historyLen,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   text,
	})
}
