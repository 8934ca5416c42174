package spotlight

import (
	"context"

	"github.com/tbessa/spotlight/internal/catalog"
	"github.com/tbessa/spotlight/internal/history"
)

// Fetcher retrieves the price-change history for an item. Implemented by
// history.Client; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, item catalog.InventoryItem) ([]history.Entry, error)
}

// EventType identifies a spotlight service event.
type EventType int

const (
	// EventRotated fires when the cursor advances to a new active item.
	EventRotated EventType = iota + 1
	// EventModelUpdated fires when a fetch result was applied to the view.
	EventModelUpdated
	// EventFetchFailed fires when a history fetch was abandoned. The prior
	// display model is retained; the next rotation tick is the retry.
	EventFetchFailed
)

// Event is emitted by the spotlight service for observers (UI, diagnostics).
type Event struct {
	Type EventType
	Time int64 // unix nanoseconds
	Item catalog.InventoryItem
	Err  string // set for EventFetchFailed
}
