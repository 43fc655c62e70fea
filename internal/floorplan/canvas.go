package floorplan

import (
	"pos-floor-frontend/internal/model"
)

// Status colors as drawn on the floor plan. The mapping is total: every
// recognized status has a color and anything else falls back to gray.
const (
	colorAvailable = "green"
	colorOccupied  = "red"
	colorReserved  = "amber"
	colorCleaning  = "blue"
	colorOffline   = "gray"
)

// StatusColor maps a live status to its canvas color.
func StatusColor(s model.TableStatusValue) string {
	switch s {
	case model.StatusAvailable:
		return colorAvailable
	case model.StatusOccupied:
		return colorOccupied
	case model.StatusReserved:
		return colorReserved
	case model.StatusCleaning:
		return colorCleaning
	default:
		return colorOffline
	}
}

// Element shapes understood by the canvas drawing code.
const (
	ElementCircle      = "circle"
	ElementRoundedRect = "rounded-rect"
)

// Background kinds for a floor canvas.
const (
	BackgroundImage = "image"
	BackgroundGrid  = "grid"
)

// CanvasElement is one absolutely positioned, clickable table on the canvas.
type CanvasElement struct {
	TableID  string  `json:"tableId"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Shape    string  `json:"shape"`
	Capacity int     `json:"capacity"`

	Status model.TableStatusValue `json:"status"`
	Color  string                 `json:"color"`

	OrderNumber string  `json:"orderNumber,omitempty"`
	Due         float64 `json:"due"`
}

// Background describes how the floor behind the tables is drawn: a defined
// image, or a dotted grid for floors that have none.
type Background struct {
	Kind     string `json:"kind"`
	ImageRef string `json:"imageRef,omitempty"`
}

// Canvas is one floor's interactive floor plan.
type Canvas struct {
	FloorID    string          `json:"floorId"`
	FloorName  string          `json:"floorName"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Background Background      `json:"background"`
	Elements   []CanvasElement `json:"elements"`
}

// BuildCanvas renders one floor against the live statuses. A floor with no
// tables yields an empty canvas, not an error.
func BuildCanvas(floor model.Floor, statuses model.StatusIndex) Canvas {
	canvas := Canvas{
		FloorID:    floor.ID,
		FloorName:  floor.Name,
		Width:      floor.Width,
		Height:     floor.Height,
		Background: Background{Kind: BackgroundGrid},
		Elements:   make([]CanvasElement, 0, len(floor.Tables)),
	}
	if floor.BackgroundImage != "" {
		canvas.Background = Background{Kind: BackgroundImage, ImageRef: floor.BackgroundImage}
	}

	for _, t := range floor.Tables {
		view := BuildTableView(t, statuses)

		shape := ElementRoundedRect
		if t.Shape == model.ShapeCircle {
			shape = ElementCircle
		}

		el := CanvasElement{
			TableID:  t.ID,
			Label:    t.Label,
			X:        t.X,
			Y:        t.Y,
			Width:    t.Width,
			Height:   t.Height,
			Shape:    shape,
			Capacity: t.Capacity,
			Status:   view.Status,
			Color:    StatusColor(view.Status),
			Due:      view.Due,
		}
		if view.Order != nil {
			el.OrderNumber = view.Order.OrderNumber
		}
		canvas.Elements = append(canvas.Elements, el)
	}
	return canvas
}

// FloorTab is one entry of the floor switcher.
type FloorTab struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TableCount int    `json:"tableCount"`
	// InNav is false for floors with no tables; they are kept out of the
	// rendered tab strip but stay addressable by id.
	InNav bool `json:"inNav"`
}

// FloorTabs lists the layout's floors for the tab control, resolving legacy
// documents to the synthetic floor. The active default is the first floor in
// document order.
func FloorTabs(layout *model.Layout) (tabs []FloorTab, activeID string) {
	floors := layout.EffectiveFloors()
	tabs = make([]FloorTab, 0, len(floors))
	for _, f := range floors {
		tabs = append(tabs, FloorTab{
			ID:         f.ID,
			Name:       f.Name,
			TableCount: len(f.Tables),
			InNav:      len(f.Tables) > 0,
		})
	}
	if len(floors) > 0 {
		activeID = floors[0].ID
	}
	return tabs, activeID
}
