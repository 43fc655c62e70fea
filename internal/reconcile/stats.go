package reconcile

import (
	"sort"

	"pos-floor-frontend/internal/model"
)

// Statistics is the dashboard's derived-numbers panel. It is recomputed in
// full from a snapshot on every fetch; nothing here is incremental.
type Statistics struct {
	Revenue        float64                        `json:"revenue"`
	ActiveOrders   int                            `json:"activeOrders"`
	LowStockItems  int                            `json:"lowStockItems"`
	TopMenuItems   []TopMenuItem                  `json:"topMenuItems"`
	OffTableOrders []model.Order                  `json:"offTableOrders"`
	TableCounts    map[model.TableStatusValue]int `json:"tableCounts"`
}

// TopMenuItem is one entry of the most-ordered ranking.
type TopMenuItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

const topMenuItemLimit = 5

// ComputeStatistics is a pure reduction over one snapshot's collections.
func ComputeStatistics(snap *Snapshot) Statistics {
	stats := Statistics{
		TableCounts: make(map[model.TableStatusValue]int),
	}

	for _, o := range snap.CompletedOrders {
		stats.Revenue += o.TotalAmount
	}

	menuNames := make(map[string]string, len(snap.Menu))
	for _, m := range snap.Menu {
		menuNames[m.ID] = m.Name
	}

	quantities := make(map[string]int)
	for _, o := range snap.Orders {
		if orderActive(o) {
			stats.ActiveOrders++
			if o.Type == model.OrderTypeTakeaway || o.Type == model.OrderTypePacking {
				stats.OffTableOrders = append(stats.OffTableOrders, o)
			}
		}
		for _, item := range o.Items {
			name := item.Name
			if name == "" {
				name = menuNames[item.MenuItemID]
			}
			if name == "" {
				continue
			}
			quantities[name] += item.Quantity
		}
	}

	for name, qty := range quantities {
		stats.TopMenuItems = append(stats.TopMenuItems, TopMenuItem{Name: name, Quantity: qty})
	}
	sort.Slice(stats.TopMenuItems, func(i, j int) bool {
		a, b := stats.TopMenuItems[i], stats.TopMenuItems[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(stats.TopMenuItems) > topMenuItemLimit {
		stats.TopMenuItems = stats.TopMenuItems[:topMenuItemLimit]
	}

	for _, item := range snap.Inventory {
		if item.LowStock() {
			stats.LowStockItems++
		}
	}

	for _, f := range snap.Layout.EffectiveFloors() {
		for _, t := range f.Tables {
			stats.TableCounts[snap.Statuses.StatusFor(t.ID).Status]++
		}
	}

	return stats
}

func orderActive(o model.Order) bool {
	return o.Status != "completed" && o.Status != "cancelled"
}
