package handler

import (
	"github.com/go-telegram/bot"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/service"
	"github.com/sovenok-bot/sovenok/internal/store"
)

// Handler holds all dependencies needed by command and text handlers.
type Handler struct {
	bot           *bot.Bot
	cfg           *config.Config
	orchestrator  *service.SessionOrchestrator
	quota         *store.QuotaLedger
	conversations *store.ConversationStore
	console       *Console
	botID         int64
	botUsername   string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot           *bot.Bot
	Cfg           *config.Config
	Orchestrator  *service.SessionOrchestrator
	Quota         *store.QuotaLedger
	Conversations *store.ConversationStore
	BotID         int64
	BotUsername   string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:           deps.Bot,
		cfg:           deps.Cfg,
		orchestrator:  deps.Orchestrator,
		quota:         deps.Quota,
		conversations: deps.Conversations,
		console:       NewConsole(deps.Cfg.AdminID, deps.Quota),
		botID:         deps.BotID,
		botUsername:   deps.BotUsername,
	}
}
