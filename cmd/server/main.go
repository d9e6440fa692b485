package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"greenboard/docs"
	"greenboard/internal/auth"
	"greenboard/internal/cache"
	"greenboard/internal/config"
	"greenboard/internal/db"
	"greenboard/internal/handler"
	"greenboard/internal/mail"
	"greenboard/internal/model"
	"greenboard/internal/repository"
	"greenboard/internal/router"
	"greenboard/internal/service"
)

// @title Greenboard API
// @version 1.0
// @description Backend for the sustainability board game: accounts, game stats, task and chance catalogs, leaderboard.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.PasswordResetToken{},
			&model.UserGameStats{},
			&model.Task{},
			&model.Chance{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserGameStats{},
		&model.Task{},
		&model.Chance{},
		&model.PasswordResetToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	chanceRepo := repository.NewChanceRepository(gormDB)
	resetTokenRepo := repository.NewResetTokenRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Outbound mail: fall back to log-only delivery without credentials
	var mailer mail.Mailer
	if cfg.SMTPUser != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		log.Println("SMTP_USER not set, reset emails will be logged instead of sent")
		mailer = mail.LogMailer{}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, resetTokenRepo, jwtService, tokenStore, mailer, cfg.FrontendURL)
	userService := service.NewUserService(userRepo, cacheClient, cfg.BoardSize)
	catalogService := service.NewCatalogService(taskRepo, chanceRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(catalogService)
	chanceHandler := handler.NewChanceHandler(catalogService)
	adminHandler := handler.NewAdminHandler(userService)
	seedHandler := handler.NewSeedHandler(catalogService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		taskHandler,
		chanceHandler,
		adminHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
