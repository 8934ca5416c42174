package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tbessa/spotlight/internal/app"
	"github.com/tbessa/spotlight/internal/ui"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg := app.DefaultConfig()
	cfg.Spotlight.Period = envDuration("SPOTLIGHT_PERIOD_MS", cfg.Spotlight.Period)
	cfg.History.BaseURL = getEnv("SPOTLIGHT_HISTORY_URL", cfg.History.BaseURL)
	cfg.Inventory.BaseURL = getEnv("SPOTLIGHT_INVENTORY_URL", cfg.Inventory.BaseURL)
	cfg.History.Token = getEnv("SPOTLIGHT_TOKEN", "")
	cfg.Inventory.Token = cfg.History.Token

	a := app.NewApp(cfg)
	defer a.Close()

	if err := ui.Run(ctx, a.Spotlight); err != nil {
		log.Printf("ui error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}
