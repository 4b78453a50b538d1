package service

import (
	"log/slog"
	"os"
	"strings"
)

const personaFallback = "Ты — дружелюбный и остроумный собеседник в чате. " +
	"Отвечай живо, по-человечески и без канцелярита."

const personaSuffix = "\n\n" +
	"Всегда отвечай развёрнуто и по существу.\n" +
	"Обращайся к собеседнику по имени — оно указано перед его сообщением в формате «Имя: текст».\n" +
	"Никогда не показывай свои внутренние рассуждения и служебную разметку."

// LoadPersona reads the system prompt from path and appends the fixed
// behavioral instructions. When the file is unavailable a built-in fallback
// persona is used instead; the bot must start either way.
func LoadPersona(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("persona file unavailable, using fallback", "path", path, "error", err)
		return personaFallback + personaSuffix
	}
	persona := strings.TrimSpace(string(data))
	if persona == "" {
		return personaFallback + personaSuffix
	}
	return persona + personaSuffix
}
