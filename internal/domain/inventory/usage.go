package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchpos/backend/internal/domain/order"
)

// UsageEntry is one order's consumption of an inventory item,
// reconstructed by scanning the order set.
type UsageEntry struct {
	OrderNo         string          `json:"orderNo"`
	CustomerName    string          `json:"customerName"`
	OrderDate       time.Time       `json:"orderDate"`
	QuantityUsed    decimal.Decimal `json:"quantityUsed"`
	ItemDescription string          `json:"itemDescription"`
}

// ComputeFabricUsage reconstructs the order-driven consumption of one
// fabric by folding over the given orders. Orders are the sole source
// of truth for consumption: nothing here is cached or stored, so the
// result always reflects orders as they stand now, including edits the
// ledger was never told about. Entries are sorted newest order first.
func ComputeFabricUsage(fabricCode string, orders []order.StitchingOrder) []UsageEntry {
	entries := make([]UsageEntry, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Fabric == nil || item.Fabric.FabricCode != fabricCode {
				continue
			}
			entries = append(entries, UsageEntry{
				OrderNo:         o.OrderNo,
				CustomerName:    o.CustomerName,
				OrderDate:       o.OrderDate,
				QuantityUsed:    item.Fabric.MetersUsed,
				ItemDescription: item.ItemType,
			})
		}
	}
	sortUsageEntries(entries)
	return entries
}

// ComputeAccessoryUsage reconstructs the order-driven consumption of
// one accessory; see ComputeFabricUsage.
func ComputeAccessoryUsage(accessoryCode string, orders []order.StitchingOrder) []UsageEntry {
	entries := make([]UsageEntry, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			for _, a := range item.Accessories {
				if a.AccessoryCode != accessoryCode {
					continue
				}
				entries = append(entries, UsageEntry{
					OrderNo:         o.OrderNo,
					CustomerName:    o.CustomerName,
					OrderDate:       o.OrderDate,
					QuantityUsed:    a.QuantityUsed,
					ItemDescription: item.ItemType,
				})
			}
		}
	}
	sortUsageEntries(entries)
	return entries
}

// TotalUsed sums the quantities of the given usage entries
func TotalUsed(entries []UsageEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.QuantityUsed)
	}
	return total
}

func sortUsageEntries(entries []UsageEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OrderDate.After(entries[j].OrderDate)
	})
}
