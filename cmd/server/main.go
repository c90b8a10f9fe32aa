package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"numguru/internal/app"
	"numguru/internal/config"
	"numguru/internal/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	l, err := logger.New(cfg.App.AppName, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = serve(ctx, cfg, l)
	stop()
	if err != nil {
		l.Error("server exited", zap.Error(err))
	}
	_ = l.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, l *zap.Logger) (err error) {
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	srv, cleanup, err := app.Bootstrap(cfg, l)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		err = errors.Join(err, cleanup())
	}()

	listenErr := make(chan error, 1)
	go func() {
		l.Info("listening", zap.String("addr", addr), zap.String("env", cfg.App.Environment))
		listenErr <- srv.Fiber.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	l.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Fiber.ShutdownWithContext(shutdownCtx)
}
