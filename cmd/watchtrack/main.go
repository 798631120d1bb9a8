package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelar/watchtrack/internal/config"
	"github.com/avelar/watchtrack/internal/database"
	"github.com/avelar/watchtrack/internal/logger"
	"github.com/avelar/watchtrack/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if *configPath != "" {
		config.SetConfigPath(*configPath)
	}
	cfg := config.Get()
	logger.Init(cfg.Logging.Level)

	stopWatch, err := config.Watch(func(c *config.Config) {
		logger.SetLevel(c.Logging.Level)
	})
	if err != nil {
		logger.Warn("Config watcher unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	if err := database.Initialize(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	r, err := server.SetupRouter()
	if err != nil {
		logger.Error("Failed to set up server: %v", err)
		os.Exit(1)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("Shutdown incomplete: %v", err)
		}
		os.Exit(0)
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting watchtrack server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("Server exited: %v", err)
		os.Exit(1)
	}
}
