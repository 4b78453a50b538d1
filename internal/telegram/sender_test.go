package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortPassthrough(t *testing.T) {
	parts := SplitMessage("короткое сообщение", 4096)
	require.Len(t, parts, 1)
	assert.Equal(t, "короткое сообщение", parts[0])
}

func TestSplitMessageRespectsRuneLimit(t *testing.T) {
	text := strings.Repeat("ж", 10_000)
	parts := SplitMessage(text, 4096)

	var rejoined strings.Builder
	for _, part := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(part), 4096)
		rejoined.WriteString(part)
	}
	assert.Equal(t, text, rejoined.String())
}

func TestSplitMessagePrefersNewline(t *testing.T) {
	first := strings.Repeat("а", 60)
	second := strings.Repeat("б", 60)
	parts := SplitMessage(first+"\n"+second, 100)

	require.Len(t, parts, 2)
	assert.Equal(t, first+"\n", parts[0])
	assert.Equal(t, second, parts[1])
}
