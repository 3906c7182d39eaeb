package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/NiteshMarwaha/vibetrader/internal/config"
	"github.com/NiteshMarwaha/vibetrader/internal/handler"
	"github.com/NiteshMarwaha/vibetrader/internal/middleware"
	"github.com/NiteshMarwaha/vibetrader/internal/repository"
	"github.com/NiteshMarwaha/vibetrader/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	tradeRepo := repository.NewTradeRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	tradeService := service.NewTradeService(tradeRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, cfg.IsProduction())
	tradeHandler := handler.NewTradeHandler(tradeService)

	r := chi.NewRouter()
	r.Use(middleware.Logger(slog.Default()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)
	})

	r.Post("/auth/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(authService))
		r.Get("/auth/me", authHandler.HandleMe)
		r.Get("/dashboard", authHandler.HandleDashboard)
		r.Get("/trades", tradeHandler.HandleListTrades)
		r.Post("/trades", tradeHandler.HandleCreateTrade)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
