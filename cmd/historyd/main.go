package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tbessa/spotlight/internal/histserver"
)

func main() {
	_ = godotenv.Load()

	cfg := histserver.DefaultConfig()
	if addr := os.Getenv("HISTORYD_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if v := os.Getenv("HISTORYD_DRIFT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.DriftInterval = time.Duration(ms) * time.Millisecond
		}
	}

	srv := histserver.NewServer(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("shutting down...")
		srv.Close()
	}()

	log.Printf("historyd listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve failed: %v", err)
	}
}
