package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestModerator(t *testing.T) Moderator {
	t.Helper()
	m, err := NewModerator([]string{"noob", "trash", "griefer"}, '*', nil)
	require.NoError(t, err)
	return m
}

func TestCensor(t *testing.T) {
	m := newTestModerator(t)

	tests := []struct {
		name        string
		input       string
		want        string
		wantMatches int
	}{
		{"clean text untouched", "good game everyone", "good game everyone", 0},
		{"plain match", "what a noob", "what a ****", 1},
		{"case insensitive", "NOOB alert", "**** alert", 1},
		{"leet speak", "n00b play", "**** play", 1},
		{"punctuation split", "n.o.o.b", "*******", 1},
		{"multiple words", "trash noob", "***** ****", 2},
		{"empty input", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			censored, words := m.Censor(tt.input)
			req.Equal(tt.want, censored)
			req.Len(words, tt.wantMatches)
		})
	}
}

func TestCensor_PreservesSurroundingText(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t)

	censored, words := m.Censor("gg, but that griefer ruined it")
	req.Equal("gg, but that ******* ruined it", censored)
	req.Equal([]string{"griefer"}, words)
}
