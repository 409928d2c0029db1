package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/config"
	"github.com/octobees/people-api/internal/database"
	"github.com/octobees/people-api/internal/handler"
	"github.com/octobees/people-api/internal/logging"
	middlewarepkg "github.com/octobees/people-api/internal/middleware"
	"github.com/octobees/people-api/internal/repository"
	"github.com/octobees/people-api/internal/router"
	"github.com/octobees/people-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	peopleRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.WithError(err).WithField("driver", cfg.DBDriver).Fatal("failed to open store")
	}
	defer closeStore()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL, cfg.JWTIssuer)
	validator := service.NewPersonValidator(peopleRepo)

	authService := service.NewAuthService(peopleRepo, validator, jwtManager, logger)
	peopleService := service.NewPeopleService(peopleRepo, validator)

	if created, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logger.WithError(err).Fatal("failed to bootstrap administrator")
	} else if created {
		logger.WithField("username", cfg.Admin.Username).Info("bootstrap administrator ready")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(logger.Writer())

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, peopleRepo, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		People:  handler.NewPeopleHandler(peopleService),
		Session: handler.NewSessionHandler(logger),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "driver": cfg.DBDriver}).Info("people api listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

// openStore connects to the configured driver, applies the schema and returns
// the matching repository with its close function.
func openStore(ctx context.Context, cfg *config.Config) (repository.PeopleRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, database.SQLExec(db), database.DialectSQLite); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewSQLitePeopleRepository(db), func() { db.Close() }, nil
	default:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, database.PoolExec(pool), database.DialectPostgres); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPGXPeopleRepository(pool), pool.Close, nil
	}
}
