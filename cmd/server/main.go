package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"guvi-backend/internal/auth"
	"guvi-backend/internal/cache"
	"guvi-backend/internal/config"
	"guvi-backend/internal/database"
	"guvi-backend/internal/db"
	"guvi-backend/internal/handlers"
	h "guvi-backend/internal/http"
	"guvi-backend/internal/middleware"
	"guvi-backend/internal/repositories"
	"guvi-backend/internal/services"
	"guvi-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional, the dashboard falls back to live queries
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard served uncached)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	trainerRepo := repositories.NewTrainerRepository(pool)
	trainingRepo := repositories.NewTrainingRepository(pool)
	poRepo := repositories.NewPORepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	settingRepo := repositories.NewSystemSettingRepository(pool)
	onlineTxRepo := repositories.NewOnlineTransactionRepository(pool)
	dashboardRepo := repositories.NewDashboardRepository(pool)

	// Resume storage is optional
	resumeStore, err := storage.NewR2Store(ctx, cfg)
	if err != nil {
		log.Printf("[R2] Resume storage unavailable: %v (resumes kept inline)", err)
	}
	var resumes services.ResumeStore
	if resumeStore != nil {
		resumes = resumeStore
		log.Println("[R2] Resume storage configured")
	}

	// Services
	notificationService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo, jwtManager)
	clientService := services.NewClientService(clientRepo, userRepo, notificationService)
	trainerService := services.NewTrainerService(trainerRepo, userRepo, resumes, notificationService)
	trainingService := services.NewTrainingService(trainingRepo, clientRepo, trainerRepo, notificationService)
	settingService := services.NewSystemSettingService(settingRepo)
	poService := services.NewPOService(poRepo, clientRepo, trainerRepo, trainingRepo, settingService, notificationService)
	invoiceService := services.NewInvoiceService(invoiceRepo, poRepo, clientRepo, trainerRepo, trainingRepo, settingService, notificationService)
	dashboardService := services.NewDashboardService(dashboardRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret,
		onlineTxRepo, invoiceService, settingService)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, clientService, trainerService)
	clientHandler := handlers.NewClientHandler(clientService)
	trainerHandler := handlers.NewTrainerHandler(trainerService)
	trainingHandler := handlers.NewTrainingHandler(trainingService)
	poHandler := handlers.NewPOHandler(poService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	paymentHandler := handlers.NewPaymentHandler(razorpayService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	settingHandler := handlers.NewSystemSettingHandler(settingService)
	healthHandler := handlers.NewHealthHandler(pool)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := h.NewRouter(
		authHandler, clientHandler, trainerHandler, trainingHandler,
		poHandler, invoiceHandler, paymentHandler, notificationHandler,
		dashboardHandler, settingHandler, healthHandler, authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.Metrics(
			middleware.RequestID(
				middleware.CORS(cfg)(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
