package config

import "time"

const (
	// Daily quota
	DailyMessageLimit      = 35
	ReferralBonusPerInvite = 3

	// Lazy expiry sweep of stale quota records
	QuotaSweepInterval = 30 * time.Minute

	// Conversation history bound (5 exchanges)
	HistoryMaxEntries = 10

	// AI request timeout and retry policy
	RequestTimeout     = 60 * time.Second
	BackendMaxAttempts = 3
	BackendRetryStep   = 2 * time.Second

	// Completion parameters
	DefaultTemperature  = 0.7
	MaxCompletionTokens = 1024

	// Default models per provider
	DefaultDeepSeekModel   = "deepseek-chat"
	DefaultOpenRouterModel = "deepseek/deepseek-chat-v3-0324:free"

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Chance of appending a mood emoji to a delivered reply
	MoodEmojiChance = 0.2
)
