package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command handlers on the bot instance. The default
// text handler for assistant chat is registered separately in main.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, h.handleStatus)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/referral", bot.MatchTypePrefix, h.handleReferral)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypePrefix, h.handleAdmin)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, h.handleCancel)
}
