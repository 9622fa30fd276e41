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
	"github.com/inkshelf/inkshelf-go/internal/config"
	"github.com/inkshelf/inkshelf-go/internal/handler"
	"github.com/inkshelf/inkshelf-go/internal/middleware"
	"github.com/inkshelf/inkshelf-go/internal/repository"
	"github.com/inkshelf/inkshelf-go/internal/service"
	"github.com/joho/godotenv"
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

	if err := repository.CreateSchema(db); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.JWTExpiry)
	catalogService := service.NewCatalogService(bookRepo)
	searchService := service.NewSearchService(bookRepo)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(catalogService)
	searchHandler := handler.NewSearchHandler(searchService)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/user/signUp", authHandler.HandleSignUp)
		r.Post("/api/user/signIn", authHandler.HandleSignIn)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(authService))
		r.Get("/api/user/signOut", authHandler.HandleSignOut)

		r.Post("/api/books/create", bookHandler.HandleCreate)
		r.Get("/api/books/all", bookHandler.HandleList)
		r.Get("/api/books/searchs", searchHandler.HandleSearch)
		r.Get("/api/books/{id}", bookHandler.HandleGet)
		r.Put("/api/books/update/{id}", bookHandler.HandleUpdate)
		r.Delete("/api/books/delete/{id}", bookHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
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
