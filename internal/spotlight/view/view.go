package view

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbessa/spotlight/internal/catalog"
	"github.com/tbessa/spotlight/internal/history"
)

// Direction classifies a price change for presentation.
type Direction int

const (
	Unchanged Direction = iota
	Increase
	Decrease
)

// Row is one price change in display order.
type Row struct {
	ID          int64
	CreatedAt   time.Time
	PriceBefore decimal.Decimal
	PriceAfter  decimal.Decimal
}

// Delta is the signed price change. Derived at render time, not stored.
func (r Row) Delta() decimal.Decimal {
	return r.PriceAfter.Sub(r.PriceBefore)
}

// Direction classifies the row's price change.
func (r Row) Direction() Direction {
	switch r.PriceAfter.Cmp(r.PriceBefore) {
	case 1:
		return Increase
	case -1:
		return Decrease
	default:
		return Unchanged
	}
}

// DisplayModel is the render-ready summary of an item's price history.
// Recomputed in full whenever a new entry set arrives; never mutated.
type DisplayModel struct {
	BasePrice    decimal.Decimal
	UnitPrice    decimal.NullDecimal
	CurrentPrice decimal.Decimal
	Rows         []Row // newest first
}

// Build derives a DisplayModel from an item and its raw history. Total
// function: empty history is valid, and it never rejects input.
//
// BasePrice falls back from the item's base price to its unit price to zero.
// CurrentPrice is the newest entry's PriceAfter, or BasePrice with no
// history. Rows are sorted newest first; equal timestamps keep input order.
func Build(item catalog.InventoryItem, entries []history.Entry) DisplayModel {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			ID:          e.ID,
			CreatedAt:   e.CreatedAt,
			PriceBefore: e.PriceBefore,
			PriceAfter:  e.PriceAfter,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	base := decimal.Zero
	if item.BasePrice.Valid {
		base = item.BasePrice.Decimal
	} else if item.UnitPrice.Valid {
		base = item.UnitPrice.Decimal
	}

	current := base
	if len(rows) > 0 {
		current = rows[0].PriceAfter
	}

	return DisplayModel{
		BasePrice:    base,
		UnitPrice:    item.UnitPrice,
		CurrentPrice: current,
		Rows:         rows,
	}
}

// Snapshot is a point-in-time view of the spotlight.
type Snapshot struct {
	Active    catalog.InventoryItem
	HasActive bool
	Model     DisplayModel
	HasModel  bool
}

// SpotlightView holds the current active item and display model for readers.
// The service is the only writer.
type SpotlightView struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewSpotlightView creates an empty SpotlightView.
func NewSpotlightView() *SpotlightView {
	return &SpotlightView{}
}

// SetActive records the newly selected item. The model is left as-is until
// the item's fetch completes, so readers see stale-but-valid data rather
// than a blank display.
func (v *SpotlightView) SetActive(item catalog.InventoryItem) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snap.Active = item
	v.snap.HasActive = true
}

// ApplyModel replaces the display model.
func (v *SpotlightView) ApplyModel(model DisplayModel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snap.Model = model
	v.snap.HasModel = true
}

// Snapshot returns a copy of the current state.
func (v *SpotlightView) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snap := v.snap
	snap.Model.Rows = append([]Row(nil), v.snap.Model.Rows...)
	return snap
}
