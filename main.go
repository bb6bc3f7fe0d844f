package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"listino/internal/config"
	"listino/internal/handlers"
	"listino/internal/middleware"
	"listino/internal/repositories"
	"listino/internal/services"
	"listino/internal/session"
	"listino/pkg/mailer"
	"listino/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	if cfg.AccessPIN == "" {
		log.Println("Warning: ACCESS_PIN is not set; all catalog requests will be denied")
	}

	// --- Catalog source ---
	var catalogRepo repositories.CatalogRepository
	switch cfg.CatalogSource {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to catalog database: %v", err)
		}
		catalogRepo = repositories.NewGORMCatalogRepository(db)
	default:
		catalogRepo = repositories.NewCSVCatalogRepository(cfg.CatalogCSVPath)
	}

	// The catalog is loaded once and shared read-only by every session.
	// An unavailable catalog is fatal: nothing can render without it.
	catalogService := services.NewCatalogService(catalogRepo)
	products, err := catalogService.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products", len(products))

	// --- Mail and events ---
	mailClient := mailer.NewClient(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPUsername,
	})

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	quoteService := services.NewQuoteService(mailClient, publisher, cfg.OperatorEmail, cfg.LogoURL)

	// --- Sessions ---
	sessionManager := session.NewManager(cfg.SessionTTL)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := sessionManager.Sweep(); removed > 0 {
				log.Printf("Evicted %d idle sessions (%d live)", removed, sessionManager.Len())
			}
		}
	}()

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(cfg.AccessPIN)
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg.PageSize)
	selectionHandler := handlers.NewSelectionHandler(catalogService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"products": len(catalogService.Products()),
		})
	})

	apiV1 := app.Group("/api/v1", middleware.WithSession(sessionManager))

	// PIN entry is the only route outside the gate.
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.PinRequired(cfg.AccessPIN))
	catalogHandler.RegisterRoutes(protected)
	selectionHandler.RegisterRoutes(protected)
	quoteHandler.RegisterRoutes(protected)

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
