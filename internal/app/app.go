package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tbessa/spotlight/internal/catalog"
	"github.com/tbessa/spotlight/internal/history"
	"github.com/tbessa/spotlight/internal/spotlight/service"
)

// App owns the widget subsystems: the catalog poller feeding inventory
// snapshots into the spotlight service.
type App struct {
	Spotlight *service.Service

	cfg     Config
	catalog *catalog.Client

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewApp wires the clients and the spotlight service and starts polling
// inventory.
func NewApp(cfg Config) *App {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}

	a := &App{
		cfg:     cfg,
		catalog: catalog.NewClient(cfg.Inventory),
		closed:  make(chan struct{}),
	}
	a.Spotlight = service.NewService(history.NewClient(cfg.History), cfg.Spotlight)

	a.wg.Add(1)
	go a.runPoller()

	return a
}

// runPoller keeps the spotlight supplied with the latest grouped inventory.
// A failed poll is logged and skipped; the service keeps rotating over the
// previous snapshot.
func (a *App) runPoller() {
	defer a.wg.Done()

	a.poll()

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.closed:
			return
		case <-ticker.C:
			a.poll()
		}
	}
}

func (a *App) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.PollInterval)
	defer cancel()

	groups, err := a.catalog.FetchInventory(ctx)
	if err != nil {
		log.Printf("inventory poll failed: %v", err)
		return
	}
	a.Spotlight.SetInventory(groups)
}

// Close shuts down the poller first, then the spotlight service.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		close(a.closed)
	})
	a.wg.Wait()

	a.Spotlight.Close()
}
