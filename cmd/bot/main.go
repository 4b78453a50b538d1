package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
	"github.com/sovenok-bot/sovenok/internal/handler"
	"github.com/sovenok-bot/sovenok/internal/middleware"
	"github.com/sovenok-bot/sovenok/internal/service"
	"github.com/sovenok-bot/sovenok/internal/store"
	"github.com/sovenok-bot/sovenok/internal/web"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// All state is in-memory by design and lost on restart.
	conversations := store.NewConversationStore()
	quota := store.NewQuotaLedger()

	persona := service.LoadPersona(cfg.PersonaPath)
	orchestrator := service.NewSessionOrchestrator(
		newBackend(cfg), conversations, quota, service.NewSanitizer(), persona, cfg,
	)

	// Handler pointer for use in the default handler closure
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			h.HandleText(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	h = handler.New(handler.Deps{
		Bot:           b,
		Cfg:           cfg,
		Orchestrator:  orchestrator,
		Quota:         quota,
		Conversations: conversations,
		BotID:         me.ID,
		BotUsername:   me.Username,
	})
	h.Register()

	// Liveness endpoint for the hosting platform's port probe
	srv := web.NewServer(cfg.Port)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("liveness server stopped", "error", err)
		}
	}()

	slog.Info("starting bot", "username", me.Username, "provider", cfg.BackendProvider)
	b.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("liveness server shutdown", "error", err)
	}
	slog.Info("bot stopped gracefully")
}

// newBackend picks the completion provider by configuration. Config
// validation already guaranteed the matching API key is present.
func newBackend(cfg *config.Config) domain.Completer {
	switch cfg.BackendProvider {
	case config.ProviderOpenRouter:
		return service.NewOpenRouterClient(cfg.OpenRouterKey, cfg.BackendModel)
	default:
		return service.NewDeepSeekClient(cfg.DeepSeekKey, cfg.BackendModel)
	}
}
