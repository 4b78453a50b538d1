package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sovenok-bot/sovenok/internal/config"
)

func (h *Handler) handleReferral(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	userID := update.Message.From.ID
	refLink := fmt.Sprintf("https://t.me/%s?start=r_%d", h.botUsername, userID)
	count := h.quota.ReferralCount(userID)

	text := fmt.Sprintf(
		"👥 Реферальная программа\n\n"+
			"Ваша ссылка:\n%s\n\n"+
			"Приглашено друзей: %d\n"+
			"Каждый друг добавляет %d сообщения к вашему дневному лимиту.",
		refLink, count, config.ReferralBonusPerInvite,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}
