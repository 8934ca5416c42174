package histserver

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbessa/spotlight/internal/catalog"
)

// priceChange is the wire form of one history record.
type priceChange struct {
	ID          int64           `json:"id"`
	InventoryID int64           `json:"inventoryId"`
	PriceBefore decimal.Decimal `json:"priceBefore"`
	PriceAfter  decimal.Decimal `json:"priceAfter"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Store holds the demo catalog and its accumulated price changes. In-memory
// only; the point is to give the widget live data, not to persist anything.
type Store struct {
	mu      sync.RWMutex
	groups  catalog.Grouped
	history map[int64][]priceChange
	ids     []int64
	nextID  int64
	rng     *rand.Rand
}

func nprice(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// NewStore creates a Store seeded with a small demo catalog.
func NewStore(seed int64) *Store {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	groups := catalog.Grouped{
		"bakery": {
			{ProductID: 101, ProductName: "Sourdough Loaf", BasePrice: nprice("6.50")},
			{ProductID: 102, ProductName: "Croissant", BasePrice: nprice("3.20"), UnitPrice: nprice("3.00")},
			{ProductID: 103, ProductName: "Rye Bread", BasePrice: nprice("5.80")},
		},
		"dairy": {
			{ProductID: 201, ProductName: "Whole Milk 1L", BasePrice: nprice("1.90")},
			{ProductID: 202, ProductName: "Aged Cheddar", BasePrice: nprice("9.40")},
			// no base price on purpose: exercises the unit-price fallback
			{ProductID: 203, ProductName: "Greek Yogurt", UnitPrice: nprice("4.10")},
		},
		"produce": {
			{ProductID: 301, ProductName: "Avocado", BasePrice: nprice("2.30")},
			{ProductID: 302, ProductName: "Heirloom Tomato", BasePrice: nprice("4.70")},
		},
	}

	s := &Store{
		groups:  groups,
		history: make(map[int64][]priceChange),
		rng:     rand.New(rand.NewSource(seed)),
	}
	for _, items := range groups {
		for _, item := range items {
			s.ids = append(s.ids, item.ProductID)
		}
	}
	return s
}

// Inventory returns a deep copy of the grouped catalog.
func (s *Store) Inventory() catalog.Grouped {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(catalog.Grouped, len(s.groups))
	for k, items := range s.groups {
		out[k] = append([]catalog.InventoryItem(nil), items...)
	}
	return out
}

// History returns a copy of the price changes for a product. The second
// return reports whether the product exists at all.
func (s *Store) History(productID int64) ([]priceChange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.knownLocked(productID) {
		return nil, false
	}
	return append([]priceChange(nil), s.history[productID]...), true
}

func (s *Store) knownLocked(productID int64) bool {
	for _, id := range s.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// Drift applies a random price change to a random product and returns its
// ID. Each change chains off the previous one (or the item's list price).
func (s *Store) Drift() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids[s.rng.Intn(len(s.ids))]

	before := s.lastPriceLocked(id)
	// +/- 10% random walk, two decimal places
	factor := 0.9 + s.rng.Float64()*0.2
	after := before.Mul(decimal.NewFromFloat(factor)).Round(2)

	s.nextID++
	s.history[id] = append(s.history[id], priceChange{
		ID:          s.nextID,
		InventoryID: id,
		PriceBefore: before,
		PriceAfter:  after,
		CreatedAt:   time.Now().UTC(),
	})
	return id
}

func (s *Store) lastPriceLocked(productID int64) decimal.Decimal {
	if changes := s.history[productID]; len(changes) > 0 {
		return changes[len(changes)-1].PriceAfter
	}
	for _, items := range s.groups {
		for _, item := range items {
			if item.ProductID != productID {
				continue
			}
			if item.BasePrice.Valid {
				return item.BasePrice.Decimal
			}
			if item.UnitPrice.Valid {
				return item.UnitPrice.Decimal
			}
		}
	}
	return decimal.NewFromInt(1)
}
