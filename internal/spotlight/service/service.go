package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tbessa/spotlight/internal/catalog"
	"github.com/tbessa/spotlight/internal/history"
	"github.com/tbessa/spotlight/internal/spotlight"
	"github.com/tbessa/spotlight/internal/spotlight/view"
)

type inventoryCmd struct {
	groups catalog.Grouped
}

type fetchResult struct {
	gen     uint64
	item    catalog.InventoryItem
	entries []history.Entry
	err     error
}

// Service drives the spotlight: a fixed-period scheduler advances the
// rotation cursor over the latest inventory snapshot, fetches the new active
// item's price history, and publishes the derived display model.
//
// All state (cursor, latest snapshot, fetch generation) is owned by a single
// run goroutine; inventory snapshots and fetch results arrive on one command
// channel. Each dispatched fetch is tagged with a generation token and a
// result is applied only while its token is still current, so a fetch that
// resolves after a newer rotation never redisplays stale data for the wrong
// item.
type Service struct {
	cfg     Config
	fetcher spotlight.Fetcher
	view    *view.SpotlightView
	tape    *view.Tape

	cmdCh  chan any
	events chan spotlight.Event

	droppedEvents    atomic.Int64
	discardedFetches atomic.Int64

	// run-loop state
	cursor    rotationCursor
	inventory catalog.Grouped
	gen       uint64

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewService creates a Service and starts rotating. An initial advance (and
// fetch, once inventory is present) happens immediately; subsequent ticks
// follow cfg.Period.
func NewService(fetcher spotlight.Fetcher, cfg Config) *Service {
	cfg = cfg.withDefaults()

	s := &Service{
		cfg:     cfg,
		fetcher: fetcher,
		view:    view.NewSpotlightView(),
		tape:    view.NewTape(cfg.TapeSize),
		cmdCh:   make(chan any, cfg.CommandBuffer),
		events:  make(chan spotlight.Event, cfg.EventBuffer),
		closed:  make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

// SetInventory replaces the grouped inventory snapshot. Safe to call at any
// time; the run loop reads the latest snapshot at tick time.
func (s *Service) SetInventory(groups catalog.Grouped) {
	select {
	case s.cmdCh <- inventoryCmd{groups: groups}:
	case <-s.closed:
	}
}

func (s *Service) run() {
	defer s.wg.Done()
	defer close(s.events)

	ticker := time.NewTicker(s.cfg.Period)
	defer ticker.Stop()

	s.tick()

	for {
		select {
		case <-s.closed:
			return
		case <-ticker.C:
			s.tick()
		case cmd := <-s.cmdCh:
			switch c := cmd.(type) {
			case inventoryCmd:
				s.inventory = c.groups
				// First usable snapshot: select and fetch right away
				// instead of waiting out the first period.
				if !s.cursor.hasActive {
					s.tick()
				}
			case fetchResult:
				s.applyFetch(c)
			}
		}
	}
}

// tick advances the cursor over the freshly flattened sequence and, if an
// item was selected, dispatches its history fetch. An empty sequence is a
// valid steady state: no state change, no fetch.
func (s *Service) tick() {
	seq := catalog.Flatten(s.inventory)

	item, ok := s.cursor.advance(seq)
	if !ok {
		return
	}

	s.view.SetActive(item)
	s.emit(spotlight.Event{
		Type: spotlight.EventRotated,
		Time: time.Now().UnixNano(),
		Item: item,
	})

	s.gen++
	s.wg.Add(1)
	go s.fetch(s.gen, item)
}

func (s *Service) fetch(gen uint64, item catalog.InventoryItem) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Period)
	defer cancel()

	entries, err := s.fetcher.Fetch(ctx, item)

	select {
	case s.cmdCh <- fetchResult{gen: gen, item: item, entries: entries, err: err}:
	case <-s.closed:
		// late result after disposal is a no-op
	}
}

func (s *Service) applyFetch(res fetchResult) {
	if res.gen != s.gen {
		s.discardedFetches.Add(1)
		return
	}

	if res.err != nil {
		// Abandon the fetch: record for diagnostics, keep the prior model.
		s.emit(spotlight.Event{
			Type: spotlight.EventFetchFailed,
			Time: time.Now().UnixNano(),
			Item: res.item,
			Err:  res.err.Error(),
		})
		return
	}

	s.view.ApplyModel(view.Build(res.item, res.entries))
	s.emit(spotlight.Event{
		Type: spotlight.EventModelUpdated,
		Time: time.Now().UnixNano(),
		Item: res.item,
	})
}

func (s *Service) emit(ev spotlight.Event) {
	s.tape.Append(ev)

	if s.cfg.DropEvents {
		select {
		case s.events <- ev:
		default:
			s.droppedEvents.Add(1)
		}
	} else {
		select {
		case s.events <- ev:
		case <-s.closed:
		}
	}
}

// Snapshot returns the current active item and display model.
func (s *Service) Snapshot() view.Snapshot {
	return s.view.Snapshot()
}

// Tape returns the diagnostics event tape.
func (s *Service) Tape() *view.Tape {
	return s.tape
}

// Events returns the external events channel for subscribers.
func (s *Service) Events() <-chan spotlight.Event {
	return s.events
}

// DroppedEvents returns the count of dropped external events.
func (s *Service) DroppedEvents() int64 {
	return s.droppedEvents.Load()
}

// DiscardedFetches returns the count of fetch results discarded because a
// newer rotation had already advanced.
func (s *Service) DiscardedFetches() int64 {
	return s.discardedFetches.Load()
}

// Close stops future ticks and waits for in-flight fetches to settle.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
	s.wg.Wait()
}
