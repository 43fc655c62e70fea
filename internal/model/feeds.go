package model

import "time"

// Order types as used by the order-entry flow.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypePacking  = "packing"
)

// OrderItem is one line of an order.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order is a record from the orders feed.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	TableID     string      `json:"tableId,omitempty"`
	Type        string      `json:"type"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	PaidAmount  float64     `json:"paidAmount"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// MenuItem is a record from the menu feed.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
}

// InventoryItem is a record from the inventory feed.
type InventoryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	MinThreshold float64 `json:"minThreshold"`
}

// LowStock reports whether the item is at or below its restock threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinThreshold
}

// OperationalInsight is one entry of the AI insights feed. Passed through to
// the dashboard untouched.
type OperationalInsight struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity,omitempty"`
}

// BackendStats is the server-computed stats document from /dashboard-stats.
// Served alongside the locally derived statistics, not merged with them.
type BackendStats map[string]any
