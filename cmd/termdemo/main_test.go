package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/terminal"
)

func rowText(row []segment) string {
	var s string
	for _, seg := range row {
		s += seg.text
	}
	return s
}

func TestLayoutScript(t *testing.T) {
	scr := terminal.Screen{
		ID:      "demo",
		Kind:    terminal.KindScript,
		Typing:  time.Second,
		Total:   5 * time.Second,
		Prompt:  "$",
		Command: "go test",
		Lines: []terminal.Line{
			{Text: "ok\tdemo", Style: terminal.StyleSuccess, Reveal: 2 * time.Second},
		},
	}

	rows := layout(scr.Render(500*time.Millisecond, false, ""))
	require.Len(t, rows, 1)
	require.Equal(t, styleCaret, rows[0][len(rows[0])-1].style)

	rows = layout(scr.Render(3*time.Second, true, ""))
	require.Len(t, rows, 2)
	require.Equal(t, "$ go test", rowText(rows[0]))
	require.Equal(t, "ok    demo", rowText(rows[1]))
	require.Equal(t, styleSuccess, rows[1][0].style)
}

func TestLayoutRewardBlankAndError(t *testing.T) {
	reward := terminal.Screen{ID: "r", Kind: terminal.KindReward, Total: time.Second, Caption: "ship it"}
	rows := layout(reward.Render(0, true, "/static/rewards/a.jpg"))
	require.Len(t, rows, 2)
	require.Equal(t, "[image] /static/rewards/a.jpg", rowText(rows[0]))
	require.Equal(t, "ship it", rowText(rows[1]))

	require.Empty(t, layout(terminal.BlankFrame("r")))

	rows = layout(terminal.ErrorFrame("r", terminal.ErrRender))
	require.Equal(t, render.ErrorNotice, rowText(rows[0]))
}

func TestResolveScreen(t *testing.T) {
	c := terminal.DefaultCatalog()

	i, err := resolveScreen(c, "build")
	require.NoError(t, err)
	require.Equal(t, "build", c.At(i).ID)

	_, err = resolveScreen(c, "biuld")
	require.ErrorContains(t, err, `did you mean "build"`)

	_, err = resolveScreen(c, "qqqqqqqqqqqqqqqqqqqq")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "did you mean")
}

func TestDrawTextClips(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(20, 5)

	n := drawText(s, 2, 1, 4, "terminal", styleText)
	require.Equal(t, 4, n)
	r, _, _, _ := s.GetContent(5, 1)
	require.Equal(t, 'm', r)
	r, _, _, _ = s.GetContent(2, 1)
	require.Equal(t, 't', r)

	drawBox(s, 0, 0, 10, 4)
	r, _, _, _ = s.GetContent(0, 0)
	require.Equal(t, '╭', r)
	r, _, _, _ = s.GetContent(9, 3)
	require.Equal(t, '╯', r)
}
