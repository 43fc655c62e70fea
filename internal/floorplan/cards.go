package floorplan

import (
	"time"

	"pos-floor-frontend/internal/model"
)

// TableCard is one entry of the card-list alternate view. It is a projection
// of the same TableView the canvas uses.
type TableCard struct {
	TableID  string                 `json:"tableId"`
	Label    string                 `json:"label"`
	Capacity int                    `json:"capacity"`
	Status   model.TableStatusValue `json:"status"`
	Color    string                 `json:"color"`

	OrderNumber string  `json:"orderNumber,omitempty"`
	OrderAge    string  `json:"orderAge,omitempty"`
	Due         float64 `json:"due"`
}

// BuildCards renders a floor as a card list.
func BuildCards(floor model.Floor, statuses model.StatusIndex, now time.Time) []TableCard {
	cards := make([]TableCard, 0, len(floor.Tables))
	for _, t := range floor.Tables {
		view := BuildTableView(t, statuses)
		card := TableCard{
			TableID:  t.ID,
			Label:    t.Label,
			Capacity: t.Capacity,
			Status:   view.Status,
			Color:    StatusColor(view.Status),
			Due:      view.Due,
			OrderAge: view.OrderAge(now),
		}
		if view.Order != nil {
			card.OrderNumber = view.Order.OrderNumber
		}
		cards = append(cards, card)
	}
	return cards
}
