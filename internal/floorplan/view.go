// Package floorplan builds the view-models the browser draws: the merged
// per-table join of layout geometry and live status, projected into either an
// interactive canvas or a card list.
package floorplan

import (
	"time"

	"pos-floor-frontend/internal/model"
	"pos-floor-frontend/internal/timefmt"
)

// TableView is the merged per-table view-model. Everything downstream
// (canvas, cards, action gating) works from this join; status defaulting and
// due computation live here and nowhere else.
type TableView struct {
	Table  model.Table            `json:"table"`
	Status model.TableStatusValue `json:"status"`
	Order  *model.OrderSummary    `json:"currentOrder,omitempty"`
	Due    float64                `json:"due"`
}

// HasOrder reports whether the table carries a current order.
func (v TableView) HasOrder() bool {
	return v.Order != nil
}

// BuildTableView joins one layout table with its live status record. A table
// with no status record is available.
func BuildTableView(t model.Table, statuses model.StatusIndex) TableView {
	s := statuses.StatusFor(t.ID)
	view := TableView{
		Table:  t,
		Status: s.Status,
		Order:  s.CurrentOrder,
	}
	if s.CurrentOrder != nil {
		view.Due = s.CurrentOrder.Due()
	}
	return view
}

// OrderAge renders the current order's age relative to now, empty when the
// table has no order.
func (v TableView) OrderAge(now time.Time) string {
	if v.Order == nil {
		return ""
	}
	return timefmt.RelativeRFC3339(v.Order.CreatedAt, now)
}
