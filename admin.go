// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
	defaults bool
}

func newAdminAuth(cfg config.AdminConfig) *adminAuth {
	a := &adminAuth{
		token:    generateAdminToken(),
		salt:     generateAdminToken(), // Use for IP hashing
		username: cfg.Username,
		password: cfg.Password,
	}
	// Default credentials for development (set ADMIN_USERNAME / ADMIN_PASSWORD in production)
	if a.username == "" {
		a.username = "admin"
		a.defaults = true
	}
	if a.password == "" {
		a.password = "admin123"
		a.defaults = true
	}
	return a
}

func (a *adminAuth) announce() {
	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.token)
		if a.defaults {
			log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
		}
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// hashIP is consistent per IP for the lifetime of the process
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func skipTracking(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/api/", "/terminal/stream"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Privacy-conscious visitor tracking middleware
func (a *App) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		// Respect Do Not Track header
		if skipTracking(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := store.Visit{
			HashedIP:  a.admin.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		a.background(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.store.RecordVisit(ctx, v); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

func (a *App) adminStats(c *gin.Context) (*store.Stats, error) {
	return a.store.Stats(c.Request.Context(), time.Now())
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, app *App) {
	auth := app.admin

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": app.cfg.Database.VisitorRetention.String(),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if auth.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie("admin_token", auth.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", auth.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", auth.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", auth.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(auth.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := app.adminStats(c)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":      stats,
			"maxStreams": app.cfg.Terminal.MaxStreams,
			"liveNow":    len(app.streams),
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := app.adminStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := app.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// Privacy compliance endpoint, runs the retention cleanup now
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		app.background(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			app.cleanupOldVisitorData(ctx)
		})
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := app.adminStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
