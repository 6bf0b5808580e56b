// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and registers
// every HTTP and websocket route with its middleware.
package routes

import (
	"log"

	"amparo/internal/config"
	"amparo/internal/email"
	"amparo/internal/handlers"
	"amparo/internal/middleware"
	"amparo/internal/models"
	"amparo/internal/push"
	"amparo/internal/realtime"
	"amparo/internal/repositories"
	"amparo/internal/services/auth"
	"amparo/internal/services/collaborator"
	"amparo/internal/services/elder"
	"amparo/internal/services/emergency"
	"amparo/internal/services/ledger"
	"amparo/internal/services/otp"
	"amparo/internal/services/payment"
	"amparo/internal/services/reminder"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes. The hub carries realtime
// emergency fan-out; firebaseService may be nil when push is not
// configured.
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub, firebaseService *push.FirebaseService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	elderRepo := repositories.NewElderRepository(db, repositories.CacheService)
	collabRepo := repositories.NewCollaboratorRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	ledgerStore := repositories.NewLedgerStore(db, repositories.CacheService)
	paymentRepo := repositories.NewPaymentRepository(db, repositories.CacheService)
	emergencyRepo := repositories.NewEmergencyRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)

	// Outbound mail; without SMTP credentials codes go to the log.
	var sender otp.EmailSender
	mailService, err := email.NewService()
	if err != nil {
		log.Printf("email service unavailable, logging codes instead: %v", err)
		sender = email.LogSender{}
	} else {
		sender = mailService
	}

	// Services
	otpService := otp.NewService(otpRepo, userRepo, sender, otp.Config{
		TTL: config.OTPTTL(),
	})
	authService := auth.NewService(userRepo, collabRepo, otpService)
	ledgerService := ledger.NewService(ledgerStore)
	elderService := elder.NewService(elderRepo, ledgerService)
	collabService := collaborator.NewService(userRepo, elderRepo, collabRepo, ledgerService, otpService)

	paymentService := payment.NewService(
		paymentRepo,
		userRepo,
		payment.NewStripeCheckout(),
		payment.NewStripeVerifier(),
		config.GetEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/payment/success"),
		config.GetEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/payment/cancel"),
	)

	notifiers := []emergency.Notifier{
		emergency.LogNotifier{},
		emergency.NewHubNotifier(hub),
	}
	if firebaseService != nil {
		notifiers = append(notifiers, emergency.NewPushNotifier(firebaseService, userRepo))
	}
	emergencyService := emergency.NewService(
		emergencyRepo,
		elderRepo,
		collabRepo,
		emergency.NewFanoutNotifier(notifiers...),
	)

	reminderService := reminder.NewService(reminderRepo, elderRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	elderHandler := handlers.NewElderHandler(elderService)
	collabHandler := handlers.NewCollaboratorHandler(collabService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	emergencyHandler := handlers.NewEmergencyHandler(emergencyService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	userHandler := handlers.NewUserHandler(userRepo)
	healthHandler := handlers.NewHealthHandler()
	wsHandler := handlers.NewWebsocketHandler(hub)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/login-elder", authHandler.LoginElder)
	api.Post("/verify", authHandler.Verify)
	api.Post("/resend-otp", authHandler.Resend)
	api.Post("/collaborators/register", collabHandler.Register)

	// Provider webhook; the signature header is its authentication.
	api.Post("/payments/webhook", paymentHandler.Webhook)

	// Realtime channel; the session token rides the query string.
	app.Get("/ws", wsHandler.Upgrade, wsHandler.Serve())

	// Authenticated endpoints
	protected := api.Use(middleware.Auth)

	protected.Get("/me", userHandler.Me)
	protected.Post("/device-token", userHandler.RegisterDevice)

	chief := middleware.RequireRole(models.RoleChief, models.RoleAdmin)

	elders := protected.Group("/elders")
	elders.Post("/", chief, elderHandler.Create)
	elders.Get("/", chief, elderHandler.List)
	elders.Put("/:id", chief, elderHandler.Update)
	elders.Delete("/:id", chief, elderHandler.Delete)

	collaborators := protected.Group("/collaborators")
	collaborators.Get("/", chief, collabHandler.List)
	collaborators.Delete("/:id", chief, collabHandler.Remove)

	payments := protected.Group("/payments")
	payments.Post("/checkout", chief, paymentHandler.Checkout)
	payments.Get("/", paymentHandler.History)

	emergencies := protected.Group("/emergencies")
	emergencies.Post("/", emergencyHandler.Trigger)
	emergencies.Get("/", emergencyHandler.List)
	emergencies.Put("/:id/resolve", emergencyHandler.Resolve)

	reminders := protected.Group("/reminders")
	reminders.Post("/", chief, reminderHandler.Create)
	reminders.Put("/:id", chief, reminderHandler.Update)
	reminders.Delete("/:id", chief, reminderHandler.Delete)
	reminders.Get("/daily", reminderHandler.Daily)
	reminders.Put("/:id/done", reminderHandler.MarkDone)

	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Get("/users", userHandler.ListAll)
	admin.Get("/elders", elderHandler.ListAll)
}
