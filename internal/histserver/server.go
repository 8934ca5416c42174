package histserver

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds configuration for the demo history server.
type Config struct {
	// Addr is the listen address.
	Addr string
	// DriftInterval is how often a random product gets a price change.
	DriftInterval time.Duration
	// Seed seeds the price walk; 0 means time-based.
	Seed int64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8089",
		DriftInterval: 3 * time.Second,
	}
}

// Server serves the demo inventory and price-history endpoints and keeps
// prices drifting so the spotlight has something to show.
type Server struct {
	cfg   Config
	store *Store
	http  *http.Server

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewServer creates a Server and starts the price drift loop.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.DriftInterval <= 0 {
		cfg.DriftInterval = DefaultConfig().DriftInterval
	}

	store := NewStore(cfg.Seed)
	s := &Server{
		cfg:    cfg,
		store:  store,
		closed: make(chan struct{}),
	}
	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(store),
	}

	s.wg.Add(1)
	go s.runDrift()

	return s
}

func newRouter(store *Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/inventory", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Inventory())
		})
		api.GET("/products/:id/history", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
				return
			}
			changes, ok := store.History(id)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown product"})
				return
			}
			if changes == nil {
				changes = []priceChange{}
			}
			c.JSON(http.StatusOK, changes)
		})
	}

	return r
}

func (s *Server) runDrift() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.DriftInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.closed:
			return
		case <-ticker.C:
			s.store.Drift()
		}
	}
}

// ListenAndServe serves HTTP until Close. Returns http.ErrServerClosed on
// graceful shutdown.
func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Close stops the drift loop and shuts the HTTP server down.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.http.Shutdown(ctx)

	s.wg.Wait()
}
