// File: cmd/service/main.go
// @title        Asistencia QR API
// @version      1.0
// @description  API de la aplicación de control de asistencia por código QR
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"

	"asistencia-qr/internal/cache"
	"asistencia-qr/internal/config"
	"asistencia-qr/internal/database"
	"asistencia-qr/internal/router"
	"asistencia-qr/internal/service"
	"asistencia-qr/internal/store"
	"asistencia-qr/internal/view"
	"asistencia-qr/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appmw "asistencia-qr/internal/middleware"

	_ "asistencia-qr/docs" // swag generated docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo.
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

// seedAdmin creates the administrator account on first startup.
func seedAdmin(ctx context.Context, db database.DB, username, password string) error {
	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seedAdmin: %w", err)
	}
	created, err := store.EnsureAdmin(ctx, db, username, hash)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", username).Msg("administrator account seeded")
	}
	return nil
}

func run() error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("role", "service").Logger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	defer rdb.Close()

	if err := seedAdmin(context.Background(), db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("template parsing failed: %w", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(appmw.SecurityHeaders)

	router.Setup(e, db, rdb, wp, cfg)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return startServer(e, cfg.ListenAddr)
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
