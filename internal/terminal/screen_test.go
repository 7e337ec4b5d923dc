package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTyped(t *testing.T) {
	tests := []struct {
		name    string
		command string
		elapsed time.Duration
		typing  time.Duration
		want    string
	}{
		{"nothing yet", "go run .", 0, ms(800), ""},
		{"half", "go run .", ms(400), ms(800), "go r"},
		{"done", "go run .", ms(800), ms(800), "go run ."},
		{"past", "go run .", ms(5000), ms(800), "go run ."},
		{"no typing", "ls", ms(10), 0, "ls"},
		{"multibyte", "✔✔✔✔", ms(500), ms(1000), "✔✔"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Typed(tt.command, tt.elapsed, tt.typing))
		})
	}
}

func lineScreen() Screen {
	return Screen{
		ID:      "timing",
		Kind:    KindScript,
		Typing:  ms(800),
		Total:   ms(6000),
		Prompt:  "$",
		Command: "make demo",
		Lines: []Line{
			// authored to appear 1200ms into the session
			{Text: "first", Reveal: ms(400)},
			{Text: "second", Reveal: ms(2000)},
		},
	}
}

func TestRenderRevealThreshold(t *testing.T) {
	s := lineScreen()

	f := s.Render(ms(399), true, "")
	require.Empty(t, f.Lines)

	f = s.Render(ms(400), true, "")
	require.Len(t, f.Lines, 1)
	require.Equal(t, "first", f.Lines[0].Text)

	f = s.Render(ms(2000), true, "")
	require.Len(t, f.Lines, 2)
}

func TestRenderTypingGate(t *testing.T) {
	s := lineScreen()

	f := s.Render(ms(5000), false, "")
	require.Empty(t, f.Lines, "no output before typing completes")
	require.Equal(t, "make demo", f.Typed)
	require.False(t, f.TypingComplete)

	f = s.Render(ms(400), false, "")
	require.Empty(t, f.Lines)
	require.Equal(t, "make", f.Typed)
}

func TestRenderReward(t *testing.T) {
	s := Screen{ID: "r", Kind: KindReward, Total: ms(4000), Caption: "nice"}

	f := s.Render(ms(10), false, "/static/a.jpg")
	require.True(t, f.Visible)
	require.Equal(t, KindReward, f.Kind)
	require.Equal(t, "/static/a.jpg", f.ImageURL)
	require.Equal(t, "nice", f.Caption)
	require.Empty(t, f.Lines)
}

func TestSafeRenderRecoversPanic(t *testing.T) {
	s := Screen{
		ID:   "broken",
		Kind: KindScript,
		Custom: func(time.Duration, bool, string) Frame {
			panic("boom")
		},
	}

	f, err := s.SafeRender(0, true, "")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRender))
	require.Contains(t, err.Error(), "boom")
	require.Equal(t, "broken", f.ScreenID)
	require.NotEmpty(t, f.Err)
}

func TestKindAndStyleText(t *testing.T) {
	b, err := KindReward.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "reward", string(b))
	require.Equal(t, "warning", StyleWarning.String())
	require.Equal(t, "plain", Style(42).String())
}
