package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abhisg5/trafficDetector/internal/collector"
	"github.com/Abhisg5/trafficDetector/internal/config"
	httpdelivery "github.com/Abhisg5/trafficDetector/internal/delivery/http"
	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/hotspot"
	"github.com/Abhisg5/trafficDetector/internal/repository/postgres"
	"github.com/Abhisg5/trafficDetector/internal/service"
	"github.com/Abhisg5/trafficDetector/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("TRAFFICDETECTOR_CONFIG"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	slogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Database connection; fall back to the in-memory store so the service
	// stays usable for development without PostgreSQL.
	var repo domain.ReadingRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err != nil {
			slogger.Warn("could not connect to database, running on in-memory store", "error", err)
			repo = postgres.NewMemoryRepository()
		} else {
			defer pool.Close()
			pg := postgres.NewPostgresRepository(pool)
			if err := pg.InitSchema(ctx); err != nil {
				slogger.Error("schema init failed", "error", err)
				os.Exit(1)
			}
			slogger.Info("connected to PostgreSQL")
			repo = pg
		}
	} else {
		slogger.Warn("no DATABASE_URL configured, running on in-memory store")
		repo = postgres.NewMemoryRepository()
	}

	coll := collector.FromConfig(cfg, slogger.With("component", "collector"))
	defer coll.Close()

	analyzer := hotspot.New(repo, slogger.With("component", "hotspot"))
	svc := service.NewTrafficService(coll, analyzer, repo, slogger.With("component", "service"))

	app := fiber.New(fiber.Config{
		AppName:      "trafficDetector API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	httpdelivery.SetupRoutes(app, svc)

	go func() {
		slogger.Info("server starting", "addr", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		slogger.Error("server forced to shutdown", "error", err)
	}
	slogger.Info("server exited gracefully")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
