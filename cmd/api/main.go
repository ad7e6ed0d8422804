package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/blog-service/internal/auth"
	"github.com/Dan9191/blog-service/internal/config"
	"github.com/Dan9191/blog-service/internal/feed"
	"github.com/Dan9191/blog-service/internal/handler"
	"github.com/Dan9191/blog-service/internal/middleware"
	"github.com/Dan9191/blog-service/internal/repository"
	"github.com/Dan9191/blog-service/internal/scheduler"
	"github.com/Dan9191/blog-service/internal/service"
	"github.com/Dan9191/blog-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewPostgresRepository(db)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	var mailer *email.Sender
	if cfg.SMTPEnabled() {
		mailer = email.NewSender(cfg, logger)
	}

	var svcMailer service.Mailer
	if mailer != nil {
		svcMailer = mailer
	}
	svc := service.NewService(repo, tokens, svcMailer, logger)
	feedBuilder := feed.NewBuilder(cfg.BaseURL, "Blog Service", "Latest posts")
	h := handler.NewHandler(svc, feedBuilder)

	// Start digest scheduler
	if mailer != nil {
		sched := scheduler.NewScheduler(repo, mailer, logger)
		if err := sched.Start(cfg.DigestSchedule); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Identity(tokens))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/posts", h.ListPosts).Methods("GET")
	r.HandleFunc("/feed.rss", h.Feed).Methods("GET")
	// Authenticated routes; the identity requirement is enforced by the
	// service guards, not by the router
	r.HandleFunc("/me", h.Me).Methods("GET")
	r.HandleFunc("/users", h.ListUsers).Methods("GET")
	r.HandleFunc("/posts/my", h.MyPosts).Methods("GET")
	r.HandleFunc("/posts", h.CreatePost).Methods("POST")
	r.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	r.HandleFunc("/posts/{id}", h.UpdatePost).Methods("PUT")
	r.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
