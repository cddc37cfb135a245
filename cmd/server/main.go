package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bragboardhq/backend/internal/router"
	"github.com/bragboardhq/backend/internal/uploader"
	"github.com/bragboardhq/backend/pkg/config"
	"github.com/bragboardhq/backend/pkg/displaytz"
	"github.com/bragboardhq/backend/pkg/logger"
	"github.com/bragboardhq/backend/pkg/token"
	"github.com/bragboardhq/backend/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	loc, err := displaytz.Load(cfg.Display.Timezone)
	if err != nil {
		zlog.Fatal("invalid display timezone", zap.String("timezone", cfg.Display.Timezone), zap.Error(err))
	}

	db, err := config.InitDB(&cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			zlog.Error("failed to close database", zap.Error(err))
		}
	}()

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	uploads, err := uploader.NewCloudinary(&cfg.Cloudinary)
	if err != nil {
		zlog.Fatal("failed to initialize uploader", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, cfg, zlog)
	if err := router.SetupRoutes(e, db, cfg, tokens, uploads, loc, zlog); err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zlog.Info("starting server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
