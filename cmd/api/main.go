package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/andchir/install-scripts/internal/config"
	"github.com/andchir/install-scripts/internal/database"
	"github.com/andchir/install-scripts/internal/logger"
	"github.com/andchir/install-scripts/internal/server"
	"github.com/andchir/install-scripts/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Logging with rotation, to both stdout and file
	logDir := filepath.Join(cfg.DataDir, "logs")
	_ = os.MkdirAll(logDir, 0o755)
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "install-scripts.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.Init(cfg.Environment == "development", io.MultiWriter(os.Stdout, rotator))

	logger.Log().Infof("starting %s version %s", version.Name, version.Full())

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	srv, err := server.New(db, cfg)
	if err != nil {
		log.Fatalf("setup server: %v", err)
	}

	// Hourly retention purge of finished runs
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		deleted, err := srv.Runs.PurgeOlderThan(cfg.RunRetention)
		if err != nil {
			logger.Log().Warnf("run retention purge failed: %v", err)
			return
		}
		if deleted > 0 {
			logger.Log().Infof("run retention purge removed %d runs", deleted)
		}
	}); err != nil {
		log.Fatalf("schedule retention purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log().Infof("listening on :%s", cfg.HTTPPort)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
