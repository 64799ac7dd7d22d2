package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guvi-backend/internal/handlers"
	"guvi-backend/internal/middleware"
	"guvi-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	trainerHandler *handlers.TrainerHandler,
	trainingHandler *handlers.TrainingHandler,
	poHandler *handlers.POHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	settingHandler *handlers.SystemSettingHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/healthz", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/register/client", authHandler.RegisterClient).Methods("POST")
	r.HandleFunc("/auth/register/trainer", authHandler.RegisterTrainer).Methods("POST")

	// Razorpay calls the webhook directly, signature-authenticated
	r.HandleFunc("/api/payments/webhook", paymentHandler.Webhook).Methods("POST")

	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)

	// Clients
	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.Handle("", adminOnly(http.HandlerFunc(clientHandler.List))).Methods("GET")
	clientsAPI.HandleFunc("/me", clientHandler.Me).Methods("GET")
	clientsAPI.Handle("/{id:[0-9]+}", adminOnly(http.HandlerFunc(clientHandler.Get))).Methods("GET")
	clientsAPI.Handle("/{id:[0-9]+}/approve", adminOnly(http.HandlerFunc(clientHandler.Approve))).Methods("POST")
	clientsAPI.Handle("/{id:[0-9]+}/reject", adminOnly(http.HandlerFunc(clientHandler.Reject))).Methods("POST")

	// Trainers
	trainersAPI := r.PathPrefix("/api/trainers").Subrouter()
	trainersAPI.Use(authMiddleware.Authenticate)
	trainersAPI.Handle("", adminOnly(http.HandlerFunc(trainerHandler.List))).Methods("GET")
	trainersAPI.HandleFunc("/me", trainerHandler.Me).Methods("GET")
	trainersAPI.Handle("/{id:[0-9]+}", adminOnly(http.HandlerFunc(trainerHandler.Get))).Methods("GET")
	trainersAPI.Handle("/{id:[0-9]+}/approve", adminOnly(http.HandlerFunc(trainerHandler.Approve))).Methods("POST")
	trainersAPI.Handle("/{id:[0-9]+}/reject", adminOnly(http.HandlerFunc(trainerHandler.Reject))).Methods("POST")

	// Trainings and milestones
	trainingsAPI := r.PathPrefix("/api/trainings").Subrouter()
	trainingsAPI.Use(authMiddleware.Authenticate)
	trainingsAPI.Handle("", adminOnly(http.HandlerFunc(trainingHandler.CreateMapping))).Methods("POST")
	trainingsAPI.HandleFunc("", trainingHandler.List).Methods("GET")
	trainingsAPI.HandleFunc("/{id:[0-9]+}", trainingHandler.Get).Methods("GET")
	trainingsAPI.HandleFunc("/{id:[0-9]+}/milestones", trainingHandler.GetMilestones).Methods("GET")
	trainingsAPI.Handle("/{id:[0-9]+}/verify",
		authMiddleware.RequireRole(models.RoleClient)(http.HandlerFunc(trainingHandler.VerifyTraining))).Methods("POST")

	milestonesAPI := r.PathPrefix("/api/milestones").Subrouter()
	milestonesAPI.Use(authMiddleware.Authenticate)
	milestonesAPI.Handle("/{id:[0-9]+}/complete",
		authMiddleware.RequireRole(models.RoleClient)(http.HandlerFunc(trainingHandler.CompleteMilestone))).Methods("POST")
	milestonesAPI.Handle("/{id:[0-9]+}/verify",
		authMiddleware.RequireRole(models.RoleTrainer)(http.HandlerFunc(trainingHandler.VerifyMilestone))).Methods("POST")

	// Purchase orders
	posAPI := r.PathPrefix("/api/pos").Subrouter()
	posAPI.Use(authMiddleware.Authenticate)
	posAPI.HandleFunc("", poHandler.List).Methods("GET")
	posAPI.Handle("/client",
		authMiddleware.RequireRole(models.RoleClient)(http.HandlerFunc(poHandler.GenerateClientPO))).Methods("POST")
	posAPI.HandleFunc("/{id:[0-9]+}", poHandler.Get).Methods("GET")
	posAPI.Handle("/{id:[0-9]+}/process", adminOnly(http.HandlerFunc(poHandler.Process))).Methods("POST")
	posAPI.Handle("/{id:[0-9]+}/acknowledge",
		authMiddleware.RequireRole(models.RoleTrainer)(http.HandlerFunc(poHandler.Acknowledge))).Methods("POST")

	// Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.List).Methods("GET")
	invoicesAPI.Handle("/trainer",
		authMiddleware.RequireRole(models.RoleTrainer)(http.HandlerFunc(invoiceHandler.SubmitTrainerInvoice))).Methods("POST")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", invoiceHandler.Get).Methods("GET")
	invoicesAPI.Handle("/{id:[0-9]+}/approve", adminOnly(http.HandlerFunc(invoiceHandler.Approve))).Methods("POST")
	invoicesAPI.Handle("/{id:[0-9]+}/pay", adminOnly(http.HandlerFunc(invoiceHandler.MarkPaid))).Methods("POST")

	// Online payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/status", paymentHandler.Status).Methods("GET")
	paymentsAPI.Handle("/order",
		authMiddleware.RequireRole(models.RoleClient)(http.HandlerFunc(paymentHandler.CreateOrder))).Methods("POST")

	// Notifications
	notificationsAPI := r.PathPrefix("/api/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("", notificationHandler.ListUnread).Methods("GET")
	notificationsAPI.HandleFunc("/read-all", notificationHandler.MarkAllRead).Methods("POST")
	notificationsAPI.HandleFunc("/{id:[0-9]+}/read", notificationHandler.MarkRead).Methods("POST")

	// Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.Handle("/stats", adminOnly(http.HandlerFunc(dashboardHandler.GetStats))).Methods("GET")

	// Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.Handle("", adminOnly(http.HandlerFunc(settingHandler.List))).Methods("GET")
	settingsAPI.Handle("/{key}", adminOnly(http.HandlerFunc(settingHandler.Update))).Methods("PUT")

	return r
}
