package floorplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-floor-frontend/internal/model"
)

func twoFloorLayout() *model.Layout {
	return &model.Layout{
		Floors: []model.Floor{
			{
				ID: "floor-a", Name: "Floor A", Width: 800, Height: 600,
				Tables: []model.Table{
					{ID: "t1", Label: "T01", X: 50, Y: 50, Width: 100, Height: 60, Shape: model.ShapeRectangle, Capacity: 4},
					{ID: "t2", Label: "T02", X: 200, Y: 50, Width: 80, Height: 80, Shape: model.ShapeCircle, Capacity: 2},
				},
			},
			{ID: "floor-b", Name: "Floor B", Width: 800, Height: 600},
		},
	}
}

func TestBuildTableViewDefaultsToAvailable(t *testing.T) {
	statuses := model.IndexStatuses(nil)
	view := BuildTableView(model.Table{ID: "t1", Label: "T01"}, statuses)

	assert.Equal(t, model.StatusAvailable, view.Status)
	assert.Nil(t, view.Order)
	assert.Zero(t, view.Due)
}

func TestBuildTableViewDueNeverNegative(t *testing.T) {
	statuses := model.IndexStatuses([]model.TableStatus{
		{TableID: "t1", Status: model.StatusOccupied, CurrentOrder: &model.OrderSummary{
			OrderNumber: "ORD-9", TotalAmount: 100, PaidAmount: 250,
		}},
	})

	view := BuildTableView(model.Table{ID: "t1"}, statuses)
	assert.Equal(t, float64(0), view.Due)
}

func TestBuildTableViewSubtotalFallback(t *testing.T) {
	statuses := model.IndexStatuses([]model.TableStatus{
		{TableID: "t1", Status: model.StatusOccupied, CurrentOrder: &model.OrderSummary{
			OrderNumber: "ORD-1", Subtotal: 500, PaidAmount: 200,
		}},
	})

	view := BuildTableView(model.Table{ID: "t1"}, statuses)
	assert.Equal(t, float64(300), view.Due)
}

func TestStatusColorIsTotal(t *testing.T) {
	testCases := []struct {
		status   model.TableStatusValue
		expected string
	}{
		{model.StatusAvailable, "green"},
		{model.StatusOccupied, "red"},
		{model.StatusReserved, "amber"},
		{model.StatusCleaning, "blue"},
		{model.StatusMaintenance, "gray"},
		{model.StatusUnavailable, "gray"},
		{model.TableStatusValue("bogus"), "gray"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, StatusColor(tc.status), "status %s", tc.status)
	}
}

func TestBuildCanvas(t *testing.T) {
	layout := twoFloorLayout()
	statuses := model.IndexStatuses([]model.TableStatus{
		{TableID: "t1", Status: model.StatusOccupied, CurrentOrder: &model.OrderSummary{
			OrderNumber: "ORD-42", TotalAmount: 500, PaidAmount: 200,
		}},
		// Stale record for a table that no longer exists in the layout.
		{TableID: "ghost", Status: model.StatusCleaning},
	})

	canvas := BuildCanvas(layout.Floors[0], statuses)

	require.Len(t, canvas.Elements, 2)
	assert.Equal(t, BackgroundGrid, canvas.Background.Kind)

	occupied := canvas.Elements[0]
	assert.Equal(t, "red", occupied.Color)
	assert.Equal(t, ElementRoundedRect, occupied.Shape)
	assert.Equal(t, "ORD-42", occupied.OrderNumber)
	assert.Equal(t, float64(300), occupied.Due)
	assert.Equal(t, float64(50), occupied.X)

	free := canvas.Elements[1]
	assert.Equal(t, model.StatusAvailable, free.Status)
	assert.Equal(t, "green", free.Color)
	assert.Equal(t, ElementCircle, free.Shape)
}

func TestBuildCanvasEmptyFloor(t *testing.T) {
	layout := twoFloorLayout()
	canvas := BuildCanvas(layout.Floors[1], model.IndexStatuses(nil))

	assert.Equal(t, "floor-b", canvas.FloorID)
	assert.Empty(t, canvas.Elements)
}

func TestBuildCanvasBackgroundImage(t *testing.T) {
	floor := model.Floor{ID: "f", BackgroundImage: "/img/ground.png"}
	canvas := BuildCanvas(floor, model.IndexStatuses(nil))

	assert.Equal(t, BackgroundImage, canvas.Background.Kind)
	assert.Equal(t, "/img/ground.png", canvas.Background.ImageRef)
}

func TestFloorTabs(t *testing.T) {
	layout := twoFloorLayout()
	tabs, active := FloorTabs(layout)

	require.Len(t, tabs, 2)
	assert.Equal(t, "floor-a", active)
	assert.True(t, tabs[0].InNav)
	// Empty floors stay selectable but are left out of the rendered strip.
	assert.False(t, tabs[1].InNav)
	assert.Equal(t, "floor-b", tabs[1].ID)
}

func TestFloorTabsLegacyLayout(t *testing.T) {
	layout := &model.Layout{Tables: []model.Table{{ID: "t1", Label: "T01"}}}
	tabs, active := FloorTabs(layout)

	require.Len(t, tabs, 1)
	assert.Equal(t, model.LegacyFloorID, active)
	assert.Equal(t, model.LegacyFloorID, tabs[0].ID)
	assert.Equal(t, 1, tabs[0].TableCount)
}

func TestFloorTabsNoFloors(t *testing.T) {
	tabs, active := FloorTabs(&model.Layout{})
	assert.Empty(t, tabs)
	assert.Empty(t, active)
}

func TestBuildCards(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	layout := twoFloorLayout()
	statuses := model.IndexStatuses([]model.TableStatus{
		{TableID: "t2", Status: model.StatusOccupied, CurrentOrder: &model.OrderSummary{
			OrderNumber: "ORD-7", CreatedAt: "2026-03-14T11:45:00Z", Subtotal: 80, PaidAmount: 0,
		}},
	})

	cards := BuildCards(layout.Floors[0], statuses, now)
	require.Len(t, cards, 2)

	assert.Equal(t, model.StatusAvailable, cards[0].Status)
	assert.Equal(t, "ORD-7", cards[1].OrderNumber)
	assert.Equal(t, "15 min ago", cards[1].OrderAge)
	assert.Equal(t, float64(80), cards[1].Due)
}
