// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"time"

	"amparo/internal/config"
	"amparo/internal/push"
	"amparo/internal/realtime"
	"amparo/internal/repositories"
	"amparo/internal/routes"
	"amparo/internal/scheduler"
	"amparo/internal/services/reminder"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis) and migrate the schema
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Successfully connected to database")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	// Push notifications are optional; the realtime channel carries alerts
	// regardless.
	var firebaseService *push.FirebaseService
	if path := config.GetEnv("FIREBASE_CREDENTIALS", ""); path != "" {
		firebaseService, err = push.NewFirebaseService(path)
		if err != nil {
			log.Printf("Firebase unavailable, push disabled: %v", err)
			firebaseService = nil
		}
	}

	hub := realtime.NewHub()

	// Daily reminder reset
	reminderService := reminder.NewService(
		repositories.NewReminderRepository(repositories.DB),
		repositories.NewElderRepository(repositories.DB, repositories.CacheService),
	)
	resetScheduler := scheduler.New(reminderService)
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	go resetScheduler.Start(schedulerCtx)

	// Create Fiber app
	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login", "/api/login-elder", "/api/resend-otp"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	// Routes
	routes.SetupRoutes(app, repositories.DB, hub, firebaseService)

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
