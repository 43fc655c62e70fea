package model

// TableStatusValue enumerates the live operational states of a table.
type TableStatusValue string

const (
	StatusAvailable   TableStatusValue = "available"
	StatusOccupied    TableStatusValue = "occupied"
	StatusReserved    TableStatusValue = "reserved"
	StatusCleaning    TableStatusValue = "cleaning"
	StatusMaintenance TableStatusValue = "maintenance"
	StatusUnavailable TableStatusValue = "unavailable"
)

// Known reports whether v is one of the six recognized status values.
func (v TableStatusValue) Known() bool {
	switch v {
	case StatusAvailable, StatusOccupied, StatusReserved,
		StatusCleaning, StatusMaintenance, StatusUnavailable:
		return true
	}
	return false
}

// OrderSummary is the current-order digest the backend embeds into a table
// status record. Amounts may arrive as totalAmount or subtotal depending on
// the order's stage.
type OrderSummary struct {
	ID          string  `json:"id,omitempty"`
	OrderNumber string  `json:"orderNumber"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	TotalAmount float64 `json:"totalAmount,omitempty"`
	Subtotal    float64 `json:"subtotal,omitempty"`
	PaidAmount  float64 `json:"paidAmount"`
}

// Total returns the billable amount, preferring totalAmount over subtotal.
func (o OrderSummary) Total() float64 {
	if o.TotalAmount != 0 {
		return o.TotalAmount
	}
	return o.Subtotal
}

// Due is the unpaid balance. Always derived, never stored, never negative.
func (o OrderSummary) Due() float64 {
	if due := o.Total() - o.PaidAmount; due > 0 {
		return due
	}
	return 0
}

// TableStatus is a live status record keyed by table id. The key is a loose
// reference: it may point at a table no longer present in the layout, and a
// layout table may have no record at all.
type TableStatus struct {
	TableID      string           `json:"tableId"`
	Status       TableStatusValue `json:"status"`
	CurrentOrder *OrderSummary    `json:"currentOrder,omitempty"`
}

// StatusIndex maps table ids to their live status records.
type StatusIndex map[string]TableStatus

// IndexStatuses builds a lookup keyed by table id. Later records for the
// same table win, matching the backend's last-write semantics.
func IndexStatuses(statuses []TableStatus) StatusIndex {
	idx := make(StatusIndex, len(statuses))
	for _, s := range statuses {
		idx[s.TableID] = s
	}
	return idx
}

// StatusFor resolves the live status of a table, defaulting to available
// when no record exists.
func (idx StatusIndex) StatusFor(tableID string) TableStatus {
	if s, ok := idx[tableID]; ok {
		if s.Status == "" {
			s.Status = StatusAvailable
		}
		return s
	}
	return TableStatus{TableID: tableID, Status: StatusAvailable}
}
