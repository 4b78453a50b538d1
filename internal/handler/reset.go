package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sovenok-bot/sovenok/internal/domain"
)

func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	key := domain.UserKey{
		ChatID: update.Message.Chat.ID,
		UserID: update.Message.From.ID,
	}
	h.conversations.Clear(key)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🔄 Контекст сброшен. Начат новый диалог.",
	})
}
