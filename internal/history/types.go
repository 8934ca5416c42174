package history

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Entry is one price change for an inventory item, as recorded by the
// history service. Entries are append-only and owned by that service.
type Entry struct {
	ID          int64
	InventoryID int64
	PriceBefore decimal.Decimal
	PriceAfter  decimal.Decimal
	CreatedAt   time.Time
}

// ParseEntries decodes a JSON array of history records. Decoding is
// deliberately lenient: upstream data shape is not under our control, so a
// missing or non-numeric price coerces to zero and an unparsable timestamp
// coerces to the zero time instead of failing the batch.
func ParseEntries(data []byte) []Entry {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil
	}

	var out []Entry
	parsed.ForEach(func(_, rec gjson.Result) bool {
		out = append(out, Entry{
			ID:          rec.Get("id").Int(),
			InventoryID: rec.Get("inventoryId").Int(),
			PriceBefore: parsePrice(rec.Get("priceBefore")),
			PriceAfter:  parsePrice(rec.Get("priceAfter")),
			CreatedAt:   parseTime(rec.Get("createdAt")),
		})
		return true
	})
	return out
}

func parsePrice(v gjson.Result) decimal.Decimal {
	switch v.Type {
	case gjson.Number:
		return decimal.NewFromFloat(v.Num)
	case gjson.String:
		d, err := decimal.NewFromString(v.Str)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func parseTime(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.String:
		t, err := time.Parse(time.RFC3339Nano, v.Str)
		if err != nil {
			return time.Time{}
		}
		return t
	case gjson.Number:
		// unix seconds
		return time.Unix(int64(v.Num), 0).UTC()
	default:
		return time.Time{}
	}
}
