package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InventoryItem is a single product as supplied by the upstream catalog.
// ProductID is the stable identity; everything else may change between
// snapshots. Prices are nullable because upstream does not guarantee either.
type InventoryItem struct {
	ProductID   int64               `json:"productId"`
	ProductName string              `json:"productName"`
	BasePrice   decimal.NullDecimal `json:"basePrice"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
}

// Grouped maps a category name to its items. Neither key order nor item
// order is guaranteed across snapshots.
type Grouped map[string][]InventoryItem

// Flatten linearizes a grouped snapshot into one total, deterministic order:
// categories ascending by case-sensitive string compare, items within each
// category ascending by ProductID. Two snapshots with equal content always
// flatten to the same sequence regardless of insertion order.
func Flatten(groups Grouped) []InventoryItem {
	if len(groups) == 0 {
		return nil
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 0
	for _, items := range groups {
		total += len(items)
	}

	out := make([]InventoryItem, 0, total)
	for _, k := range keys {
		items := append([]InventoryItem(nil), groups[k]...)
		sort.Slice(items, func(i, j int) bool {
			return items[i].ProductID < items[j].ProductID
		})
		out = append(out, items...)
	}
	return out
}
