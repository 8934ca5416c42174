package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbessa/spotlight/internal/catalog"
	"github.com/tbessa/spotlight/internal/history"
	"github.com/tbessa/spotlight/internal/spotlight"
)

// fakeFetcher returns one entry per call with PriceAfter = the configured
// price for the product. Optional per-product delay and failure schedule.
type fakeFetcher struct {
	mu        sync.Mutex
	price     map[int64]int64
	delay     map[int64]time.Duration
	failAfter int // fail every call once this many calls happened; 0 = never
	calls     int
}

func (f *fakeFetcher) Fetch(ctx context.Context, item catalog.InventoryItem) ([]history.Entry, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	price := f.price[item.ProductID]
	delay := f.delay[item.ProductID]
	failAfter := f.failAfter
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failAfter > 0 && n > failAfter {
		return nil, errors.New("history service unavailable")
	}

	return []history.Entry{{
		ID:          int64(n),
		InventoryID: item.ProductID,
		PriceBefore: decimal.Zero,
		PriceAfter:  decimal.NewFromInt(price),
		CreatedAt:   time.Now(),
	}}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func grouped(ids ...int64) catalog.Grouped {
	items := make([]catalog.InventoryItem, len(ids))
	for i, id := range ids {
		items[i] = catalog.InventoryItem{ProductID: id, ProductName: "p"}
	}
	return catalog.Grouped{"all": items}
}

func testConfig(period time.Duration) Config {
	cfg := DefaultConfig()
	cfg.Period = period
	return cfg
}

func TestServiceInitialFetch(t *testing.T) {
	f := &fakeFetcher{price: map[int64]int64{7: 70}}
	svc := NewService(f, testConfig(time.Hour)) // no periodic ticks in this test
	defer svc.Close()

	svc.SetInventory(grouped(7))

	// The first snapshot triggers an immediate advance + fetch.
	time.Sleep(50 * time.Millisecond)

	snap := svc.Snapshot()
	if !snap.HasActive || snap.Active.ProductID != 7 {
		t.Fatalf("expected active product 7, got %+v", snap)
	}
	if !snap.HasModel {
		t.Fatal("expected model from initial fetch")
	}
	if snap.Model.CurrentPrice.String() != "70" {
		t.Errorf("expected current price 70, got %s", snap.Model.CurrentPrice)
	}
}

func TestServiceRotatesOnPeriod(t *testing.T) {
	f := &fakeFetcher{price: map[int64]int64{1: 10, 2: 20}}
	svc := NewService(f, testConfig(15*time.Millisecond))
	defer svc.Close()

	svc.SetInventory(grouped(1, 2))

	time.Sleep(100 * time.Millisecond)

	events := svc.Tape().Latest(svc.Tape().Count())
	var rotations []int64
	for _, ev := range events {
		if ev.Type == spotlight.EventRotated {
			rotations = append(rotations, ev.Item.ProductID)
		}
	}
	if len(rotations) < 3 {
		t.Fatalf("expected at least 3 rotations, got %d", len(rotations))
	}
	for i := 1; i < len(rotations); i++ {
		if rotations[i] == rotations[i-1] {
			t.Errorf("rotation %d did not advance: product %d twice", i, rotations[i])
		}
	}
}

func TestServiceStaleFetchDiscarded(t *testing.T) {
	// Product 1's history always takes several rotation periods, so its
	// results are always stale by the time they arrive.
	f := &fakeFetcher{
		price: map[int64]int64{1: 999, 2: 20, 3: 30},
		delay: map[int64]time.Duration{1: 80 * time.Millisecond},
	}
	svc := NewService(f, testConfig(10*time.Millisecond))

	svc.SetInventory(grouped(1, 2, 3))
	time.Sleep(200 * time.Millisecond)
	svc.Close()

	if svc.DiscardedFetches() == 0 {
		t.Error("expected at least one discarded stale fetch")
	}

	snap := svc.Snapshot()
	if snap.HasModel && snap.Model.CurrentPrice.String() == "999" {
		t.Error("stale result for product 1 was applied")
	}
	for _, ev := range svc.Tape().Latest(svc.Tape().Count()) {
		if ev.Type == spotlight.EventModelUpdated && ev.Item.ProductID == 1 {
			t.Error("model update recorded for always-stale product 1")
		}
	}
}

func TestServiceFetchFailureKeepsModel(t *testing.T) {
	f := &fakeFetcher{price: map[int64]int64{5: 50}, failAfter: 1}
	svc := NewService(f, testConfig(15*time.Millisecond))
	defer svc.Close()

	svc.SetInventory(grouped(5))

	time.Sleep(120 * time.Millisecond)

	snap := svc.Snapshot()
	if !snap.HasModel {
		t.Fatal("expected model from the first (successful) fetch")
	}
	if snap.Model.CurrentPrice.String() != "50" {
		t.Errorf("prior model not retained, current price %s", snap.Model.CurrentPrice)
	}

	var failures int
	for _, ev := range svc.Tape().Latest(svc.Tape().Count()) {
		if ev.Type == spotlight.EventFetchFailed {
			failures++
			if ev.Err == "" {
				t.Error("fetch failure event missing error detail")
			}
		}
	}
	if failures == 0 {
		t.Error("expected fetch failures on the diagnostics tape")
	}
}

func TestServiceEmptyInventoryIsSteadyState(t *testing.T) {
	f := &fakeFetcher{}
	svc := NewService(f, testConfig(10*time.Millisecond))
	defer svc.Close()

	svc.SetInventory(catalog.Grouped{})

	time.Sleep(60 * time.Millisecond)

	if f.callCount() != 0 {
		t.Errorf("no fetches expected for empty inventory, got %d", f.callCount())
	}
	if snap := svc.Snapshot(); snap.HasActive {
		t.Errorf("no active item expected, got product %d", snap.Active.ProductID)
	}
}

func TestServiceToleratesInventoryChurn(t *testing.T) {
	f := &fakeFetcher{price: map[int64]int64{1: 10, 2: 20, 8: 80, 9: 90}}
	svc := NewService(f, testConfig(10*time.Millisecond))
	defer svc.Close()

	svc.SetInventory(grouped(1, 2))
	time.Sleep(40 * time.Millisecond)

	// Replace the whole collection; the active item vanishes.
	svc.SetInventory(grouped(8, 9))
	time.Sleep(50 * time.Millisecond)

	snap := svc.Snapshot()
	if !snap.HasActive {
		t.Fatal("expected an active item after churn")
	}
	if snap.Active.ProductID != 8 && snap.Active.ProductID != 9 {
		t.Errorf("active product %d is not in the current inventory", snap.Active.ProductID)
	}
}

func TestServiceCloseWithInFlightFetch(t *testing.T) {
	f := &fakeFetcher{
		price: map[int64]int64{1: 10},
		delay: map[int64]time.Duration{1: 60 * time.Millisecond},
	}
	svc := NewService(f, testConfig(time.Hour))

	svc.SetInventory(grouped(1))
	time.Sleep(20 * time.Millisecond) // fetch now in flight

	done := make(chan struct{})
	go func() {
		svc.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while a fetch was in flight")
	}

	// The late result is a no-op.
	if snap := svc.Snapshot(); snap.HasModel {
		t.Error("fetch result applied after disposal")
	}
}
