package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"indoor-map/internal/common/config"
	"indoor-map/internal/common/middleware"
	"indoor-map/internal/converter/handlers"
	"indoor-map/internal/converter/repository"
	"indoor-map/internal/converter/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// Indoor Map Converter Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	storage := service.NewFileStorage(cfg.StorageRoot)
	maps := service.NewMapService(repo, storage, cfg.RenderPxPerMeter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Indoor Map Converter",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app, handlers.NewConvertHandler(cfg.RenderPxPerMeter), handlers.NewMapsHandler(maps))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Indoor Map Converter on %s (env: %s, db: %s, storage: %s)",
		addr, cfg.Environment, cfg.DBPath, cfg.StorageRoot)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
