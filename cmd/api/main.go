package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/handler"
	"github.com/Dan9191/crypto-companion/internal/integrations/coingecko"
	"github.com/Dan9191/crypto-companion/internal/repository"
	"github.com/Dan9191/crypto-companion/internal/scheduler"
	"github.com/Dan9191/crypto-companion/internal/service"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/Dan9191/crypto-companion/internal/utils/email"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	var repo repository.Store
	if cfg.DBConn == config.MemoryDB {
		logger.Warn("Using the in-memory store, data is lost on exit")
		repo = repository.NewMemoryStore()
	} else {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo = repository.NewRepository(db)
	}

	// Initialize layers
	oracle := coingecko.NewClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	notifier := session.NewNotifier()
	notifier.Subscribe(func(e session.Event) {
		logger.WithFields(logrus.Fields{"event": e.Kind, "user_id": e.UserID}).Info("Session changed")
	})
	svc := service.NewService(repo, oracle, mailer, notifier, logger, cfg)
	h := handler.NewHandler(svc, logger, cfg)

	// Background jobs
	jobs := scheduler.New(logger)
	if err := jobs.AddJob(cfg.PriceRefreshSchedule, scheduler.NewPriceRefreshJob(svc, logger)); err != nil {
		logger.Fatalf("Failed to schedule price refresh: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Setup router
	r := handler.NewRouter(h)
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigin,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
