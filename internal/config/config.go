package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Backend provider names accepted in BACKEND_PROVIDER.
const (
	ProviderDeepSeek   = "deepseek"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN,required"`

	// Backend selection
	BackendProvider string `env:"BACKEND_PROVIDER" envDefault:"deepseek"`
	DeepSeekKey     string `env:"DEEPSEEK_API_KEY"`
	OpenRouterKey   string `env:"OPENROUTER_API_KEY"`
	BackendModel    string `env:"BACKEND_MODEL"`

	// Admin
	AdminID int64 `env:"ADMIN_ID"`

	// Chats excluded from quota enforcement
	ExemptChatIDs []int64 `env:"EXEMPT_CHAT_IDS" envSeparator:","`

	// Persona
	PersonaPath string `env:"PERSONA_PATH" envDefault:"persona.txt"`

	// Server
	Port int `env:"PORT" envDefault:"3000"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	switch cfg.BackendProvider {
	case ProviderDeepSeek:
		if cfg.DeepSeekKey == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is required for the deepseek backend")
		}
	case ProviderOpenRouter:
		if cfg.OpenRouterKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter backend")
		}
	default:
		return nil, fmt.Errorf("unknown backend provider %q", cfg.BackendProvider)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	return c.AdminID != 0 && telegramID == c.AdminID
}

func (c *Config) IsExemptChat(chatID int64) bool {
	for _, id := range c.ExemptChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
