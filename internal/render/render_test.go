package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/terminal"
)

func scriptFrame(typingComplete bool) terminal.Frame {
	s := terminal.Screen{
		ID:      "demo",
		Kind:    terminal.KindScript,
		Typing:  800 * time.Millisecond,
		Total:   6 * time.Second,
		Prompt:  "zach@portfolio:~$",
		Command: "go test ./...",
		Lines: []terminal.Line{
			{Text: "ok  \tpkg", Style: terminal.StyleSuccess, Reveal: 100 * time.Millisecond},
			{Text: "<script>alert(1)</script>", Style: terminal.StyleError, Reveal: 200 * time.Millisecond},
		},
	}
	return s.Render(time.Second, typingComplete, "")
}

func TestHTMLScript(t *testing.T) {
	out, err := HTML(scriptFrame(true))
	require.NoError(t, err)

	require.Contains(t, out, `data-screen="demo"`)
	require.Contains(t, out, `<span class="ps1">zach@portfolio:~$</span> go test ./...`)
	require.Contains(t, out, "<p class=\"line success\">ok  \tpkg</p>")
	require.Contains(t, out, `<p class="line error">&lt;script&gt;alert(1)&lt;/script&gt;</p>`)
	require.NotContains(t, out, "caret")
}

func TestHTMLTypingShowsCaret(t *testing.T) {
	out, err := HTML(scriptFrame(false))
	require.NoError(t, err)
	require.Contains(t, out, `class="caret"`)
	require.NotContains(t, out, `class="line success"`)
}

func TestHTMLReward(t *testing.T) {
	s := terminal.Screen{ID: "r", Kind: terminal.KindReward, Total: time.Second, Caption: "ship it"}
	out, err := HTML(s.Render(0, true, "/static/rewards/a.jpg"))
	require.NoError(t, err)
	require.Contains(t, out, `terminal-reward full-bleed`)
	require.Contains(t, out, `<img src="/static/rewards/a.jpg" alt="ship it">`)
	require.Contains(t, out, `<p class="caption">ship it</p>`)
}

func TestRewardsRenderFullBleed(t *testing.T) {
	c := terminal.DefaultCatalog()
	require.NotEmpty(t, c.Rewards)
	for _, s := range c.Rewards {
		out, err := HTML(s.Render(0, false, c.RewardURLs[0]))
		require.NoError(t, err)
		require.Contains(t, out, `terminal-reward full-bleed`, s.ID)
	}
}

func TestHTMLBlankAndError(t *testing.T) {
	out, err := HTML(terminal.BlankFrame("x"))
	require.NoError(t, err)
	require.Contains(t, out, "terminal-blank")

	out, err = HTML(terminal.ErrorFrame("x", terminal.ErrRender))
	require.NoError(t, err)
	require.Contains(t, out, `<p class="terminal-error">`+ErrorNotice+`</p>`)
	require.NotContains(t, out, "render failed", "internal error text stays out of the page")
}

func TestANSIScript(t *testing.T) {
	out := ANSI(scriptFrame(true), 60)
	require.Contains(t, out, "zach@portfolio:~$")
	require.Contains(t, out, "go test ./...")
	require.Contains(t, out, "ok"+strings.Repeat(" ", 6)+"pkg")
	require.Contains(t, out, "╭")

	for _, row := range strings.Split(out, "\n") {
		require.LessOrEqual(t, len([]rune(stripANSI(row))), 60)
	}
}

func TestANSILines(t *testing.T) {
	rows := ANSILines(terminal.BlankFrame("x"))
	require.Equal(t, []string{""}, rows)

	rows = ANSILines(terminal.ErrorFrame("x", terminal.ErrRender))
	require.Len(t, rows, 1)
	require.Contains(t, rows[0], ErrorNotice)

	s := terminal.Screen{ID: "r", Kind: terminal.KindReward, Total: time.Second}
	rows = ANSILines(s.Render(0, true, "https://example.com/a.jpg"))
	require.Len(t, rows, 1)
	require.Contains(t, rows[0], "[image] https://example.com/a.jpg")

	rows = ANSILines(scriptFrame(false))
	require.Len(t, rows, 1, "no output rows while typing")
}

func TestLineStyleFallback(t *testing.T) {
	require.Equal(t, LineStyle(terminal.StylePlain).GetForeground(), LineStyle(terminal.Style(99)).GetForeground())
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
