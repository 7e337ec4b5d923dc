// Command termdemo plays the portfolio's terminal demo full screen in a real
// terminal, or prints its frames as styled text with -plain.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/terminal"
)

const (
	windowMaxWidth  = 88
	windowMaxHeight = 22
	clickHz         = 1400
	clickMs         = 12
)

type Viewer struct {
	screen        tcell.Screen
	seq           *terminal.Sequencer
	width, height int

	// Audio
	audioInit bool
	lastTyped int
}

func NewViewer(seq *terminal.Sequencer, sound bool) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	v := &Viewer{screen: screen, seq: seq}
	v.width, v.height = screen.Size()

	if sound {
		if err := v.initAudio(); err != nil {
			// Non-fatal, the demo runs silent
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	return v, nil
}

func (v *Viewer) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/20))
	if err == nil {
		v.audioInit = true
	}
	return err
}

// click plays one short key click
func (v *Viewer) click() {
	if !v.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, clickHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(clickMs*time.Millisecond), sine))
}

func (v *Viewer) draw() {
	f := v.seq.Frame()
	snap := v.seq.Snapshot()

	if typed := len([]rune(f.Typed)); f.Visible && !f.TypingComplete && typed > v.lastTyped {
		v.click()
		v.lastTyped = typed
	} else if !f.Visible || f.TypingComplete {
		v.lastTyped = 0
	}

	v.screen.Clear()
	w, h := min(windowMaxWidth, v.width-2), min(windowMaxHeight, v.height-2)
	if w < 20 || h < 5 {
		drawText(v.screen, 0, 0, v.width, "terminal too small", styleError)
		v.screen.Show()
		return
	}
	x0, y0 := (v.width-w)/2, (v.height-h)/2
	drawBox(v.screen, x0, y0, w, h)

	for i, row := range layout(f) {
		if i >= h-2 {
			break
		}
		x := x0 + 2
		for _, seg := range row {
			x += drawText(v.screen, x, y0+1+i, x0+w-2-x, seg.text, seg.style)
		}
	}

	status := fmt.Sprintf(" %s · %s · pattern %d · q quits ", snap.ScreenID, snap.Kind, snap.Pattern)
	drawText(v.screen, x0+2, y0+h-1, w-4, status, styleMuted)
	v.screen.Show()
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) run() {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	v.seq.Start()
	defer v.seq.Stop()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
			v.draw()
		case <-v.seq.Changes():
			v.draw()
		}
	}
}

func (v *Viewer) cleanup() {
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
}

// runPlain prints every screen once as it leaves, until d has passed
func runPlain(seq *terminal.Sequencer, d time.Duration, width int) {
	seq.Start()
	defer seq.Stop()

	deadline := time.After(d)
	var last terminal.Frame
	for {
		select {
		case <-deadline:
			if last.Visible {
				fmt.Println(render.ANSI(last, width))
			}
			return
		case <-seq.Changes():
			f := seq.Frame()
			if !f.Visible && last.Visible {
				fmt.Printf("# %s\n%s\n\n", last.ScreenID, render.ANSI(last, width))
			}
			last = f
		}
	}
}

// resolveScreen maps a -screen id to its catalog index
func resolveScreen(c terminal.Catalog, id string) (int, error) {
	if i, ok := c.Lookup(id); ok {
		return i, nil
	}
	if s, ok := c.Suggest(id); ok {
		return 0, fmt.Errorf("unknown screen %q, did you mean %q?", id, s)
	}
	return 0, fmt.Errorf("unknown screen %q", id)
}

func main() {
	sound := flag.Bool("sound", false, "play a key click for every typed character")
	seed := flag.Int64("seed", 0, "seed the screen selection (0 uses the config or the clock)")
	plain := flag.Bool("plain", false, "print frames as styled text instead of taking over the terminal")
	duration := flag.Duration("duration", 30*time.Second, "how long -plain runs")
	width := flag.Int("width", 72, "frame width in -plain mode")
	start := flag.String("screen", "", "id of the first screen to show")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	catalog := terminal.DefaultCatalog()
	if len(cfg.Terminal.RewardURLs) > 0 {
		catalog.RewardURLs = slices.Clone(cfg.Terminal.RewardURLs)
	}

	opts := []terminal.Option{
		terminal.WithTick(cfg.Terminal.Tick),
		terminal.WithGap(cfg.Terminal.Gap),
	}
	switch {
	case *seed != 0:
		opts = append(opts, terminal.WithSeed(*seed))
	case cfg.Terminal.Seed != 0:
		opts = append(opts, terminal.WithSeed(cfg.Terminal.Seed))
	}
	if *start != "" {
		i, err := resolveScreen(catalog, *start)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		opts = append(opts, terminal.WithInitialScreen(i))
	}

	if !*plain {
		// tcell owns the terminal, log to a file instead
		logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "termdemo.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			defer logFile.Close()
			log.SetOutput(logFile)
		} else {
			log.SetOutput(io.Discard)
		}
		opts = append(opts, terminal.WithLogger(log.Default()))
	}

	seq, err := terminal.New(catalog, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build sequencer: %v\n", err)
		os.Exit(1)
	}

	if *plain {
		runPlain(seq, *duration, *width)
		return
	}

	viewer, err := NewViewer(seq, *sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()

	viewer.run()
}
