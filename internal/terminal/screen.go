// Package terminal drives the animated terminal illustration shown on the
// portfolio: an immutable catalog of scripted sessions and reward images, and a
// Sequencer that decides which screen is visible and for how long.
package terminal

import (
	"errors"
	"fmt"
	"time"
)

// ErrRender wraps a panic raised by a screen's render function
var ErrRender = errors.New("terminal: render failed")

// Kind separates scripted sessions from reward images
type Kind int

const (
	KindScript Kind = iota
	KindReward
)

func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindReward:
		return "reward"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText lets Kind travel as "script"/"reward" in JSON
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Style is the color role of an output line
type Style int

const (
	StylePlain Style = iota
	StyleMuted
	StyleSuccess
	StyleWarning
	StyleError
	StyleAccent
)

var styleNames = [...]string{"plain", "muted", "success", "warning", "error", "accent"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "plain"
	}
	return styleNames[s]
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Line is one output line of a scripted session.
// Reveal is the elapsed activation time at which the line appears; it only
// applies once typing has finished.
type Line struct {
	Text   string        `json:"text"`
	Style  Style         `json:"style"`
	Reveal time.Duration `json:"reveal_ns"`
}

// RenderFunc maps the state of an activation to a frame. It must be pure.
type RenderFunc func(elapsed time.Duration, typingComplete bool, rewardURL string) Frame

// Screen is one immutable catalog entry
type Screen struct {
	ID     string
	Kind   Kind
	Typing time.Duration
	Total  time.Duration

	// Script screens
	Prompt  string
	Command string
	Lines   []Line

	// Reward screens show a full-bleed image with an optional caption
	Caption string

	// Custom replaces the built-in renderer when set
	Custom RenderFunc
}

// Frame is the visual state of the terminal at one instant
type Frame struct {
	ScreenID       string        `json:"screen_id"`
	Kind           Kind          `json:"kind"`
	Visible        bool          `json:"visible"`
	Elapsed        time.Duration `json:"elapsed_ns"`
	TypingComplete bool          `json:"typing_complete"`

	Prompt  string `json:"prompt,omitempty"`
	Command string `json:"command,omitempty"`
	Typed   string `json:"typed,omitempty"`
	Lines   []Line `json:"lines,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
	Caption  string `json:"caption,omitempty"`

	Err string `json:"error,omitempty"`
}

// IsReward reports whether the frame shows a reward image
func (f Frame) IsReward() bool {
	return f.Kind == KindReward
}

// BlankFrame is shown during the gap between two screens
func BlankFrame(screenID string) Frame {
	return Frame{ScreenID: screenID}
}

// ErrorFrame replaces the output of a screen whose renderer failed
func ErrorFrame(screenID string, err error) Frame {
	return Frame{
		ScreenID: screenID,
		Visible:  true,
		Err:      err.Error(),
	}
}

// Render returns the frame for the given activation state
func (s *Screen) Render(elapsed time.Duration, typingComplete bool, rewardURL string) Frame {
	if s.Custom != nil {
		return s.Custom(elapsed, typingComplete, rewardURL)
	}
	if s.Kind == KindReward {
		return s.renderReward(rewardURL)
	}
	return s.renderScript(elapsed, typingComplete)
}

// SafeRender is Render with panics converted to an error wrapping ErrRender
func (s *Screen) SafeRender(elapsed time.Duration, typingComplete bool, rewardURL string) (f Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: screen %s: %v", ErrRender, s.ID, r)
			f = ErrorFrame(s.ID, err)
		}
	}()
	return s.Render(elapsed, typingComplete, rewardURL), nil
}

func (s *Screen) renderScript(elapsed time.Duration, typingComplete bool) Frame {
	f := Frame{
		ScreenID:       s.ID,
		Kind:           KindScript,
		Visible:        true,
		Elapsed:        elapsed,
		TypingComplete: typingComplete,
		Prompt:         s.Prompt,
		Command:        s.Command,
		Typed:          Typed(s.Command, elapsed, s.Typing),
	}
	if !typingComplete {
		return f
	}

	f.Typed = s.Command
	for _, l := range s.Lines {
		if elapsed >= l.Reveal {
			f.Lines = append(f.Lines, l)
		}
	}
	return f
}

func (s *Screen) renderReward(rewardURL string) Frame {
	return Frame{
		ScreenID:       s.ID,
		Kind:           KindReward,
		Visible:        true,
		TypingComplete: true,
		ImageURL:       rewardURL,
		Caption:        s.Caption,
	}
}

// Typed returns the part of command typed after elapsed out of a typing
// duration, proportional in runes. The whole command is returned once
// elapsed reaches typing.
func Typed(command string, elapsed, typing time.Duration) string {
	if typing <= 0 || elapsed >= typing {
		return command
	}
	if elapsed <= 0 {
		return ""
	}
	runes := []rune(command)
	n := int(int64(len(runes)) * int64(elapsed) / int64(typing))
	return string(runes[:n])
}
