package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"highfive-service/internal/auth"
	"highfive-service/internal/config"
	"highfive-service/internal/database"
	"highfive-service/internal/graph"
	"highfive-service/internal/handler"
	"highfive-service/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		if errors.Is(err, config.ErrMissingJWTSecret) {
			logger.Fatal("JWT_SECRET is required")
		}
		logger.Fatalf("Config load failed: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозитории
	repos := graph.Repositories{
		Users:     repository.NewUserRepository(db),
		Teams:     repository.NewTeamRepository(db),
		Comments:  repository.NewCommentRepository(db),
		HighFives: repository.NewHighFiveRepository(db),
	}

	// Аутентификация
	authenticator := auth.NewAuthenticator(repos.Users)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	authHandler := handler.NewAuthHandler(authenticator, tokens, logger)
	gqlHandler := handler.NewGraphQLHandler(graph.NewSchema(), repos, logger)

	e.GET("/", gqlHandler.Playground)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/playground-login", authHandler.PlaygroundLogin)
	e.GET("/protected", authHandler.Protected, handler.RequireAuth(tokens, repos.Users, logger))
	e.POST("/graphql", gqlHandler.Query, handler.OptionalAuth(tokens, repos.Users, logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
