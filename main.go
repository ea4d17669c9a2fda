package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"registrar_portal_backend/internals/configs"
	database "registrar_portal_backend/internals/databases"
	documentModel "registrar_portal_backend/internals/features/registrar/documents/model"
	feedbackModel "registrar_portal_backend/internals/features/registrar/feedback/model"
	requestModel "registrar_portal_backend/internals/features/registrar/requests/model"
	studentModel "registrar_portal_backend/internals/features/registrar/students/model"
	userModel "registrar_portal_backend/internals/features/users/auth/model"
	middlewares "registrar_portal_backend/internals/middlewares"
	routes "registrar_portal_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	// Amounts go out as JSON numbers, matching what the frontend expects.
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		// 🚀 fast JSON codec
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ base middleware + performance
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard, generous enough for the gateway round-trip
		ctx, cancel := context.WithTimeout(c.Context(), 90*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if err := database.DB.AutoMigrate(
		&studentModel.Student{},
		&userModel.User{},
		&documentModel.Document{},
		&requestModel.DocumentRequest{},
		&requestModel.RequestDocument{},
		&feedbackModel.Feedback{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	database.EnsureStoredRoutines(database.DB)

	// ✅ Routes
	routes.BaseRoutes(app, database.DB)
	routes.SetupRoutes(app, database.DB)

	// 🔒 server connection timeouts (payment attach can take a while)
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
