package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/terminal"
)

// Catppuccin Mocha, matching the web stylesheet
var (
	styleText    = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xcdd6f4))
	styleMuted   = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xa6adc8))
	styleSuccess = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xa6e3a1))
	styleWarning = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xf9e2af))
	styleError   = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xf38ba8)).Bold(true)
	styleAccent  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xcba6f7))
	stylePrompt  = styleSuccess.Bold(true)
	styleImage   = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x89b4fa)).Underline(true)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x585b70))
	styleCaret   = styleText.Reverse(true)
)

type segment struct {
	text  string
	style tcell.Style
}

func lineStyle(s terminal.Style) tcell.Style {
	switch s {
	case terminal.StyleMuted:
		return styleMuted
	case terminal.StyleSuccess:
		return styleSuccess
	case terminal.StyleWarning:
		return styleWarning
	case terminal.StyleError:
		return styleError
	case terminal.StyleAccent:
		return styleAccent
	default:
		return styleText
	}
}

// layout turns a frame into styled rows for the window body
func layout(f terminal.Frame) [][]segment {
	switch {
	case f.Err != "":
		return [][]segment{{{render.ErrorNotice, styleError}}}
	case !f.Visible:
		return nil
	case f.IsReward():
		rows := [][]segment{{{"[image] " + f.ImageURL, styleImage}}}
		if f.Caption != "" {
			rows = append(rows, []segment{{f.Caption, styleAccent}})
		}
		return rows
	}

	head := []segment{{f.Prompt, stylePrompt}, {" " + f.Typed, styleText}}
	if !f.TypingComplete {
		head = append(head, segment{" ", styleCaret})
	}
	rows := [][]segment{head}
	for _, l := range f.Lines {
		rows = append(rows, []segment{{strings.ReplaceAll(l.Text, "\t", "    "), lineStyle(l.Style)}})
	}
	return rows
}

// drawText writes s clipped to maxW cells and returns the cells used
func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) int {
	n := 0
	for _, r := range text {
		if n >= maxW {
			break
		}
		s.SetContent(x+n, y, r, nil, style)
		n++
	}
	return n
}

func drawBox(s tcell.Screen, x, y, w, h int) {
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, styleBorder)
		s.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	for j := 1; j < h-1; j++ {
		s.SetContent(x, y+j, '│', nil, styleBorder)
		s.SetContent(x+w-1, y+j, '│', nil, styleBorder)
	}
	s.SetContent(x, y, '╭', nil, styleBorder)
	s.SetContent(x+w-1, y, '╮', nil, styleBorder)
	s.SetContent(x, y+h-1, '╰', nil, styleBorder)
	s.SetContent(x+w-1, y+h-1, '╯', nil, styleBorder)
}
