package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/sakshya-ai/sakshya-web/internal/analysis"
	"github.com/sakshya-ai/sakshya-web/internal/auth"
	"github.com/sakshya-ai/sakshya-web/internal/config"
	"github.com/sakshya-ai/sakshya-web/internal/history"
	"github.com/sakshya-ai/sakshya-web/internal/logging"
	"github.com/sakshya-ai/sakshya-web/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log)

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	userRepo := auth.NewPostgresRepository(db)
	authService := auth.NewJWTService(auth.Config{
		SecretKey:     cfg.Auth.JWTSecret,
		TokenDuration: cfg.Auth.TokenDuration,
	}, userRepo)

	server := web.NewServer(web.ServerConfig{
		Logger:         logger,
		AuthService:    authService,
		History:        history.NewPostgresRepository(db),
		Analysis:       analysis.NewClient(cfg.Analysis.BaseURL),
		AllowedOrigins: cfg.CORS.Origins(),

		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	logger.Info("starting sakshya-web server", "addr", cfg.Server.Addr(), "backend", cfg.Analysis.BaseURL)
	if err := server.Run(cfg.Server.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
