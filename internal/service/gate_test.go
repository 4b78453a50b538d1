package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sovenok-bot/sovenok/internal/domain"
)

func TestShouldEngage(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Incoming
		want bool
	}{
		{
			name: "group mention engages",
			in:   domain.Incoming{Text: "привет, @sovenok_bot", MentionsBot: true},
			want: true,
		},
		{
			name: "group reply to bot engages",
			in:   domain.Incoming{Text: "а почему?", IsReplyToBot: true},
			want: true,
		},
		{
			name: "group plain message does not engage",
			in:   domain.Incoming{Text: "просто болтаем"},
			want: false,
		},
		{
			name: "private text always engages",
			in:   domain.Incoming{Text: "привет", ChatIsPrivate: true},
			want: true,
		},
		{
			name: "empty text never engages",
			in:   domain.Incoming{Text: "", ChatIsPrivate: true, MentionsBot: true},
			want: false,
		},
		{
			name: "whitespace only never engages",
			in:   domain.Incoming{Text: "   \n", ChatIsPrivate: true},
			want: false,
		},
		{
			name: "command never engages",
			in:   domain.Incoming{Text: "/status", ChatIsPrivate: true},
			want: false,
		},
		{
			name: "pure media without text never engages",
			in:   domain.Incoming{Text: "", IsReplyToBot: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldEngage(tt.in))
		})
	}
}
