package service

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sovenok-bot/sovenok/internal/config"
)

var (
	thinkBlockRe     = regexp.MustCompile(`(?s)<think>.*?</think>`)
	thinkMarkerRe    = regexp.MustCompile(`</?think>`)
	controlTokenRe   = regexp.MustCompile(`<\|[^|>]*\|>`)
	blankRunRe       = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	paragraphSplitRe = regexp.MustCompile(`\n[ \t]*\n`)
)

// moodEmojis is the curated set Decorate picks from.
var moodEmojis = []string{"🙂", "😊", "😉", "🤔", "✨"}

// Sanitizer turns raw backend output into user-deliverable text: it strips
// model-internal reasoning markup and tokenizer control markers, normalizes
// whitespace, repairs truncated endings and reflows paragraphs.
type Sanitizer struct {
	rng *rand.Rand
}

func NewSanitizer() *Sanitizer {
	return NewSanitizerWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewSanitizerWithRand allows a deterministic source for tests.
func NewSanitizerWithRand(rng *rand.Rand) *Sanitizer {
	return &Sanitizer{rng: rng}
}

// Sanitize applies the cleanup pipeline in fixed order. Sentence completion
// must run before paragraph reflow so the reformatter sees final
// punctuation. Returns "" only when nothing survives the markup stripping;
// the caller substitutes a fallback in that case.
func (s *Sanitizer) Sanitize(raw string) string {
	text := thinkBlockRe.ReplaceAllString(raw, "")
	// A lone open or close marker without its pair is stripped by itself.
	text = thinkMarkerRe.ReplaceAllString(text, "")
	text = controlTokenRe.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	text = completeSentence(text)
	return reflowParagraphs(text)
}

// Decorate appends one mood emoji with low probability. The stored history
// keeps the undecorated text so future context stays clean.
func (s *Sanitizer) Decorate(text string) string {
	if text == "" || s.rng.Float64() >= config.MoodEmojiChance {
		return text
	}
	if endsWithEmoji(text) {
		return text
	}
	return text + " " + moodEmojis[s.rng.IntN(len(moodEmojis))]
}

// completeSentence repairs truncation caused by the completion token cap:
// text that does not end in terminal punctuation gets an ellipsis when an
// internal comma or semicolon suggests an interrupted clause, a period
// otherwise.
func completeSentence(text string) string {
	for _, suffix := range []string{".", "!", "?", "…"} {
		if strings.HasSuffix(text, suffix) {
			return text
		}
	}
	if strings.ContainsAny(text, ",;") {
		return text + "…"
	}
	return text + "."
}

func reflowParagraphs(text string) string {
	paragraphs := paragraphSplitRe.Split(text, -1)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, "\n\n")
}

func endsWithEmoji(text string) bool {
	trimmed := strings.TrimRight(text, " .!?…")
	r, _ := utf8.DecodeLastRuneInString(trimmed)
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0xFE0F: // variation selector trailing an emoji
		return true
	}
	return false
}
