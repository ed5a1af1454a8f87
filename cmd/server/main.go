package main // Entry point package

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/office-management/internal/auth"
	"github.com/iliyamo/office-management/internal/config"
	"github.com/iliyamo/office-management/internal/database"
	"github.com/iliyamo/office-management/internal/handler"
	"github.com/iliyamo/office-management/internal/middleware"
	"github.com/iliyamo/office-management/internal/queue"
	"github.com/iliyamo/office-management/internal/repository"
	"github.com/iliyamo/office-management/internal/router"
	"github.com/iliyamo/office-management/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for AUTH_ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword, bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load() // Load environment config
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg config.Config, logger *zap.Logger) error {
	db, err := database.Open(context.Background(), cfg.DB)
	if err != nil {
		return fmt.Errorf("connect mysql: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.Redis.Enabled {
		logger.Warn("redis unreachable; rate limiting disabled", zap.String("addr", cfg.Redis.Addr))
	}

	// nil keeps seat events switched off
	var publisher service.EventPublisher
	if cfg.Queue.Enabled {
		publisher = queue.NewPublisher(cfg.Queue.URL, cfg.Queue.Name, logger)
	}

	tx := repository.NewTxManager(db)
	floors := repository.NewFloorRepo(db)
	rooms := repository.NewRoomRepo(db)
	seats := repository.NewSeatRepo(db)
	employees := repository.NewEmployeeRepo(db)

	office := handler.NewOfficeHandler(
		service.NewInventory(tx, floors, rooms, seats, employees, logger),
		service.NewAssignment(tx, seats, employees, publisher, logger),
		service.NewStats(repository.NewStatsRepo(db)),
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)
	e.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		echomw.Recover(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.NewTokenBucket(cfg.RateLimit, rdb, logger),
	)

	router.RegisterRoutes(e)
	var guard []echo.MiddlewareFunc
	if cfg.Auth.Enabled {
		guard = []echo.MiddlewareFunc{middleware.JWTAuth(cfg.Auth.JWTSecret), middleware.RequireRole(auth.RoleAdmin)}
		creds := auth.Credentials{User: cfg.Auth.AdminUser, PasswordHash: cfg.Auth.AdminPasswordHash}
		router.RegisterAuth(e, handler.NewAuthHandler(creds, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL))
	}
	router.RegisterOffice(e, office, guard...)

	addr := ":" + cfg.Port
	logger.Info("listening",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.Bool("auth", cfg.Auth.Enabled),
		zap.Bool("queue", cfg.Queue.Enabled),
		zap.Bool("rate_limit", rdb != nil && cfg.RateLimit.Enabled))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- e.Start(addr)
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
