// terminal.go - the animated terminal demo: SSE stream, text view and preview API
package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/terminal"
)

var errBadElapsed = errors.New("elapsed must be a non-negative duration like 1.5s or a number of milliseconds")

type screenInfo struct {
	ID       string        `json:"id"`
	Kind     terminal.Kind `json:"kind"`
	TypingMS int64         `json:"typing_ms"`
	TotalMS  int64         `json:"total_ms"`
	Command  string        `json:"command,omitempty"`
	Lines    int           `json:"lines,omitempty"`
	Caption  string        `json:"caption,omitempty"`
}

// parseElapsed accepts "1500", "1500ms" or "1.5s"
func parseElapsed(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 || n > math.MaxInt64/int64(time.Millisecond) {
			return 0, errBadElapsed
		}
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errBadElapsed
	}
	return d, nil
}

func (a *App) newSequencer() (*terminal.Sequencer, error) {
	opts := []terminal.Option{
		terminal.WithTick(a.cfg.Terminal.Tick),
		terminal.WithGap(a.cfg.Terminal.Gap),
		terminal.WithLogger(log.Default()),
	}
	if a.cfg.Terminal.Seed != 0 {
		opts = append(opts, terminal.WithSeed(a.cfg.Terminal.Seed))
	}
	return terminal.New(a.catalog, opts...)
}

// streamTerminal mounts one sequencer for the lifetime of the request and
// pushes a rendered frame whenever the picture changes
func (a *App) streamTerminal(c *gin.Context) {
	select {
	case a.streams <- struct{}{}:
		defer func() { <-a.streams }()
	default:
		c.String(http.StatusServiceUnavailable, "too many terminal viewers, try again shortly")
		return
	}

	seq, err := a.newSequencer()
	if err != nil {
		log.Printf("Error creating terminal sequencer: %v", err)
		c.String(http.StatusInternalServerError, "terminal demo unavailable")
		return
	}

	ctx := c.Request.Context()
	sessionID := uuid.NewString()
	if err := a.store.StartDemoSession(ctx, sessionID, a.admin.hashIP(c.ClientIP()), time.Now()); err != nil {
		log.Printf("Error recording demo session: %v", err)
		sessionID = ""
	}

	seq.Start()
	defer func() {
		seq.Stop()
		if sessionID == "" {
			return
		}
		endCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.EndDemoSession(endCtx, sessionID, time.Now()); err != nil {
			log.Printf("Error closing demo session %s: %v", sessionID, err)
		}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	var lastHTML string
	var lastActivation uint64
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-seq.Changes():
		}

		snap := seq.Snapshot()
		if sessionID != "" && snap.Activations != lastActivation {
			lastActivation = snap.Activations
			a.recordActivation(ctx, sessionID, snap)
		}

		html, err := render.HTML(seq.Frame())
		if err != nil {
			log.Printf("Error rendering terminal frame: %v", err)
			return true
		}
		if html == lastHTML {
			return true
		}
		lastHTML = html
		c.SSEvent("frame", html)
		return true
	})
}

func (a *App) recordActivation(ctx context.Context, sessionID string, snap terminal.Snapshot) {
	act := store.Activation{
		SessionID:   sessionID,
		ScreenID:    snap.ScreenID,
		Kind:        snap.Kind.String(),
		ActivatedAt: snap.StartedAt,
	}
	if snap.Kind == terminal.KindReward {
		act.RewardURL = snap.RewardURL
	}
	if err := a.store.RecordActivation(ctx, act); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Error recording activation of %s: %v", snap.ScreenID, err)
	}
}

// renderAt is the pure preview of one screen at a fixed elapsed time
func (a *App) renderAt(scr *terminal.Screen, elapsed time.Duration, typed bool) terminal.Frame {
	f, err := scr.SafeRender(elapsed, typed, a.catalog.RewardURLs[0])
	if err != nil {
		log.Printf("terminal: %v", err)
	}
	return f
}

func (a *App) lookupScreen(c *gin.Context, id string) (*terminal.Screen, bool) {
	if i, ok := a.catalog.Lookup(id); ok {
		return a.catalog.At(i), true
	}
	body := gin.H{"error": fmt.Sprintf("unknown screen %q", id)}
	if s, ok := a.catalog.Suggest(id); ok {
		body["did_you_mean"] = s
	}
	c.JSON(http.StatusNotFound, body)
	return nil, false
}

func setupTerminalRoutes(r *gin.Engine, app *App) {
	render.ForceColor()

	// htmx fragment that opens the stream
	r.GET("/terminal", func(c *gin.Context) {
		blank, err := render.HTML(terminal.BlankFrame(""))
		if err != nil {
			log.Printf("Error rendering terminal placeholder: %v", err)
		}
		c.HTML(http.StatusOK, "terminal.html", gin.H{
			"hint":        copyFor(c.Query("lang")).TerminalHint,
			"placeholder": template.HTML(blank),
		})
	})

	r.GET("/terminal/stream", app.streamTerminal)

	// every screen at one instant, for curl
	r.GET("/terminal.txt", func(c *gin.Context) {
		elapsed, err := parseElapsed(c.DefaultQuery("elapsed", "3s"))
		if err != nil {
			c.String(http.StatusBadRequest, "%v\n", err)
			return
		}
		width, err := strconv.Atoi(c.DefaultQuery("width", "72"))
		if err != nil || width < 20 || width > 200 {
			c.String(http.StatusBadRequest, "width must be between 20 and 200\n")
			return
		}

		var b strings.Builder
		for i := 0; i < app.catalog.Len(); i++ {
			scr := app.catalog.At(i)
			f := app.renderAt(scr, elapsed, elapsed >= scr.Typing)
			fmt.Fprintf(&b, "# %s (%s)\n%s\n\n", scr.ID, scr.Kind, render.ANSI(f, width))
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
	})

	api := r.Group("/api/terminal")

	api.GET("/screens", func(c *gin.Context) {
		screens := make([]screenInfo, 0, app.catalog.Len())
		for i := 0; i < app.catalog.Len(); i++ {
			scr := app.catalog.At(i)
			screens = append(screens, screenInfo{
				ID:       scr.ID,
				Kind:     scr.Kind,
				TypingMS: scr.Typing.Milliseconds(),
				TotalMS:  scr.Total.Milliseconds(),
				Command:  scr.Command,
				Lines:    len(scr.Lines),
				Caption:  scr.Caption,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"screens":     screens,
			"reward_urls": app.catalog.RewardURLs,
			"tick_ms":     app.cfg.Terminal.Tick.Milliseconds(),
			"gap_ms":      app.cfg.Terminal.Gap.Milliseconds(),
		})
	})

	api.GET("/screens/:id/frame", func(c *gin.Context) {
		scr, ok := app.lookupScreen(c, c.Param("id"))
		if !ok {
			return
		}
		elapsed, err := parseElapsed(c.Query("elapsed"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		typed := elapsed >= scr.Typing
		if v := c.Query("typed"); v != "" {
			if typed, err = strconv.ParseBool(v); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "typed must be true or false"})
				return
			}
		}

		f := app.renderAt(scr, elapsed, typed)
		html, err := render.HTML(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"frame": f, "html": html})
	})
}
