package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/config"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/handlers"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	router     *chi.Mux
	httpServer *http.Server
}

func New(database *sql.DB, cfg config.Config, authService *services.AuthService) *Server {
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewAPITokenRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	connectionRepo := repository.NewConnectionRepository(database)
	reminderRepo := repository.NewReminderRepository(database)
	scoreRepo := repository.NewGameScoreRepository(database)
	moodRepo := repository.NewMoodEntryRepository(database)
	chatRepo := repository.NewChatMessageRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	profileService := services.NewProfileService(profileRepo, connectionRepo)
	connectionService := services.NewConnectionService(profileRepo, connectionRepo)
	reminderService := services.NewReminderService(reminderRepo, profileRepo, connectionRepo)
	moodService := services.NewMoodService(moodRepo, connectionRepo)
	gameService := services.NewGameService(scoreRepo, connectionRepo)
	chatService := services.NewChatService(chatRepo, scoreRepo, reminderService)
	notificationService := services.NewNotificationService(notificationRepo)
	analyticsService := services.NewAnalyticsService(reminderRepo, scoreRepo, moodRepo, connectionRepo)

	location := cfg.Location()
	authHandler := handlers.NewAuthHandler(authService)
	apiHandler := handlers.NewAPIHandler(tokenRepo)
	profileHandler := handlers.NewProfileHandler(profileService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	reminderHandler := handlers.NewReminderHandler(reminderService, location)
	moodHandler := handlers.NewMoodHandler(moodService)
	gameHandler := handlers.NewGameHandler(gameService)
	chatHandler := handlers.NewChatHandler(chatService, location)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, location)
	chatLimiter := middleware.NewRateLimiter(cfg.ChatRatePerMinute)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/login", authHandler.LoginPage)
	router.Get("/auth/callback", authHandler.Callback)
	router.Get("/logout", authHandler.Logout)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService, tokenRepo, userRepo))
		r.Use(middleware.LoadCaller(authService))

		r.Get("/profile", profileHandler.Get)
		r.Post("/profile", profileHandler.Create)
		r.Patch("/profile", profileHandler.Update)

		r.Get("/patients", profileHandler.ListPatients)
		r.Get("/patients/mine", profileHandler.ListMyPatients)
		r.Get("/caregiver", profileHandler.GetCaregiver)

		r.Get("/connections", connectionHandler.List)
		r.Post("/connections", connectionHandler.AddPatient)

		r.Get("/reminders/today", reminderHandler.Today)
		r.Post("/reminders", reminderHandler.Create)
		r.Post("/reminders/personal", reminderHandler.CreatePersonal)
		r.Post("/reminders/{id}/complete", reminderHandler.Complete)
		r.Post("/reminders/{id}/archive", reminderHandler.Archive)

		r.Post("/mood", moodHandler.Record)
		r.Get("/mood", moodHandler.History)

		r.Get("/games", gameHandler.List)
		r.Post("/games/scores", gameHandler.SaveScore)
		r.Get("/games/motivation", gameHandler.Motivation)

		r.With(chatLimiter.Middleware).Post("/chat", chatHandler.Send)
		r.Get("/chat", chatHandler.History)

		r.Get("/notifications", notificationHandler.List)
		r.Get("/notifications/unread-count", notificationHandler.UnreadCount)
		r.Post("/notifications/{id}/read", notificationHandler.MarkRead)

		r.Route("/patients/{id}", func(r chi.Router) {
			r.Get("/reminders/visible", reminderHandler.Visible)
			r.Get("/reminders/stats", reminderHandler.Stats)
			r.Get("/mood", moodHandler.PatientHistory)
			r.Get("/games/stats", gameHandler.Stats)
			r.Get("/games/recent", gameHandler.Recent)
			r.Get("/progress", analyticsHandler.Progress)
			r.Get("/alerts", analyticsHandler.Alerts)
		})

		r.Get("/learn/tips", handlers.LearnTips)

		r.Get("/tokens", apiHandler.ListTokens)
		r.Post("/tokens", apiHandler.CreateToken)
		r.Delete("/tokens/{id}", apiHandler.DeleteToken)
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		router:     router,
		httpServer: httpServer,
	}
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Start serves until Shutdown is called, which yields a nil error. A
// Shutdown that lands before Start makes Start return nil immediately.
func (server *Server) Start() error {
	slog.Info("starting server", "address", server.httpServer.Addr)
	if err := server.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (server *Server) Shutdown(ctx context.Context) error {
	return server.httpServer.Shutdown(ctx)
}
