package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/terminal"
)

const shutdownTimeout = 5 * time.Second

// App carries everything the handlers share
type App struct {
	cfg     config.Config
	store   *store.Store
	catalog terminal.Catalog
	admin   *adminAuth

	// streams is a semaphore over live terminal streams
	streams chan struct{}

	bgMu   sync.Mutex
	bg     sync.WaitGroup
	closed bool
}

func newApp(cfg config.Config, st *store.Store) (*App, error) {
	catalog := terminal.DefaultCatalog()
	if len(cfg.Terminal.RewardURLs) > 0 {
		catalog.RewardURLs = slices.Clone(cfg.Terminal.RewardURLs)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		store:   st,
		catalog: catalog,
		admin:   newAdminAuth(cfg.Admin),
		streams: make(chan struct{}, cfg.Terminal.MaxStreams),
	}, nil
}

// background runs f on its own goroutine; Close waits for it. Work
// handed in after Close has started is dropped.
func (a *App) background(f func()) {
	a.bgMu.Lock()
	defer a.bgMu.Unlock()
	if a.closed {
		return
	}
	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		f()
	}()
}

// Close waits for background writes and closes the store
func (a *App) Close() error {
	a.bgMu.Lock()
	a.closed = true
	a.bgMu.Unlock()

	a.bg.Wait()
	return a.store.Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	app, err := newApp(cfg, st)
	if err != nil {
		log.Fatal("Failed to build terminal catalog: ", err)
	}
	app.admin.announce()
	app.background(func() { app.runVisitorRetention(ctx, time.Hour) })

	srv := newServer(ctx, app)
	l, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal("Failed to listen: ", err)
	}

	log.Printf("Listening on %s", l.Addr())
	if err := serve(ctx, srv, l); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	stop()
	if err := app.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// newServer derives every request context from ctx, so open terminal
// streams end and close their demo session once ctx is cancelled
func newServer(ctx context.Context, app *App) *http.Server {
	return &http.Server{
		Addr:        ":" + app.cfg.Server.Port,
		Handler:     setupRouter(app),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
}

// serve runs srv on l until ctx is done and returns after in-flight
// requests have drained or the shutdown timeout has passed
func serve(ctx context.Context, srv *http.Server, l net.Listener) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func setupRouter(app *App) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(app.cfg.Server.Templates)

	r.Static("/images", app.cfg.Server.Images)
	r.Static("/static", app.cfg.Server.Static)

	r.Use(app.visitorTrackingMiddleware())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"copy": copyFor(c.Query("lang")),
		})
	})

	// htmx fragments
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "timeline.html", gin.H{"entries": workHistory})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "timeline.html", gin.H{"entries": education})
	})

	setupTerminalRoutes(r, app)
	setupAdminRoutes(r, app)
	return r
}
