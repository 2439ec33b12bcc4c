package main

import (
	"autocare_portal_go/config"
	"autocare_portal_go/db"
	"autocare_portal_go/handlers"
	"autocare_portal_go/middleware"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"autocare_portal_go/services/i18n"
	"autocare_portal_go/services/jobs"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		RemoteURL:   cfg.TursoDatabaseURL,
		AuthToken:   cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Printf("[WARNING] Failed to seed admin user: %v", err)
	}

	services.InitializeStorage(cfg)

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	middleware.InitAssetVersions("static")

	if cfg.ChatEnabled() {
		handlers.ChatResponder = services.NewOpenAIResponder(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Printf("Chat assistant enabled (model %s)", cfg.OpenAIModel)
	}

	// Reminders and session cleanup
	scheduler, err := jobs.StartScheduler(db.DB, cfg)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.CSPNonce(cfg.R2PublicURL))
	e.Use(middleware.Locale(cfg))

	// Static files, including locally stored vehicle images
	e.Static("/static", "static")

	handlers.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server shutdown: %v", err)
	}
}
