package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	if msg.Chat.Type != "private" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "Привет! Я бот для этой группы. Упомяните мой юзернейм " +
				"или ответьте на моё сообщение, чтобы пообщаться.",
		})
		return
	}

	// Deep link payload: /start r_<inviter id>
	credited := false
	parts := strings.SplitN(msg.Text, " ", 2)
	if len(parts) > 1 && strings.HasPrefix(parts[1], "r_") {
		if referrerID, err := strconv.ParseInt(strings.TrimPrefix(parts[1], "r_"), 10, 64); err == nil && referrerID > 0 {
			credited = h.quota.RegisterReferral(msg.From.ID, referrerID)
		}
	}

	welcome := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Просто напиши мне сообщение — и поговорим. В группах отвечаю "+
			"на упоминание @%s или на ответ к моему сообщению.\n\n"+
			"📋 Команды:\n"+
			"/status — дневной лимит и остаток\n"+
			"/referral — пригласить друзей и увеличить лимит\n"+
			"/reset — начать разговор заново",
		msg.From.FirstName, h.botUsername,
	)
	if credited {
		welcome += "\n\n🎁 Приглашение засчитано — ваш друг получил бонус к лимиту!"
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   welcome,
	})
}
