package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-floor-frontend/internal/floorplan"
	"pos-floor-frontend/internal/model"
)

func viewWith(status model.TableStatusValue, order *model.OrderSummary) floorplan.TableView {
	view := floorplan.TableView{
		Table:  model.Table{ID: "t1", Label: "T01"},
		Status: status,
		Order:  order,
	}
	if order != nil {
		view.Due = order.Due()
	}
	return view
}

func actionByKey(t *testing.T, resolved []Action, key string) Action {
	t.Helper()
	for _, a := range resolved {
		if a.Key == key {
			return a
		}
	}
	t.Fatalf("action %q not resolved", key)
	return Action{}
}

func TestResolveOrderLabels(t *testing.T) {
	occupied := viewWith(model.StatusOccupied, &model.OrderSummary{ID: "o1", OrderNumber: "ORD-1"})
	assert.Equal(t, "Continue Order", actionByKey(t, Resolve(occupied, "waiter"), KeyOrder).Label)

	free := viewWith(model.StatusAvailable, nil)
	assert.Equal(t, "New Order", actionByKey(t, Resolve(free, "waiter"), KeyOrder).Label)
}

func TestResolveOrderBlockedDuringCleaning(t *testing.T) {
	cleaning := viewWith(model.StatusCleaning, nil)
	a := actionByKey(t, Resolve(cleaning, "waiter"), KeyOrder)
	assert.False(t, a.Enabled)
	assert.Equal(t, "Table is being cleaned", a.Reason)
}

func TestResolveBook(t *testing.T) {
	testCases := []struct {
		status  model.TableStatusValue
		enabled bool
	}{
		{model.StatusAvailable, true},
		{model.StatusMaintenance, true},
		{model.StatusUnavailable, true},
		{model.StatusOccupied, false},
		{model.StatusReserved, false},
		{model.StatusCleaning, false},
	}
	for _, tc := range testCases {
		a := actionByKey(t, Resolve(viewWith(tc.status, nil), "waiter"), KeyBook)
		assert.Equal(t, tc.enabled, a.Enabled, "status %s", tc.status)
		if !tc.enabled {
			assert.NotEmpty(t, a.Reason)
		}
	}
}

func TestResolveBillRequiresOccupiedWithOrder(t *testing.T) {
	noOrder := viewWith(model.StatusOccupied, nil)
	a := actionByKey(t, Resolve(noOrder, "cashier"), KeyBill)
	assert.False(t, a.Enabled)
	assert.Equal(t, "No active order to bill", a.Reason)

	withOrder := viewWith(model.StatusOccupied, &model.OrderSummary{OrderNumber: "ORD-1", TotalAmount: 100})
	assert.True(t, actionByKey(t, Resolve(withOrder, "cashier"), KeyBill).Enabled)

	free := viewWith(model.StatusAvailable, &model.OrderSummary{OrderNumber: "ORD-1"})
	a = actionByKey(t, Resolve(free, "cashier"), KeyBill)
	assert.False(t, a.Enabled)
	assert.Equal(t, "Table is not occupied", a.Reason)
}

func TestResolveClear(t *testing.T) {
	unpaid := viewWith(model.StatusOccupied, &model.OrderSummary{TotalAmount: 500, PaidAmount: 200})
	a := actionByKey(t, Resolve(unpaid, "cleaner"), KeyClear)
	assert.False(t, a.Enabled)
	assert.Equal(t, "Unpaid balance on current order", a.Reason)

	paid := viewWith(model.StatusOccupied, &model.OrderSummary{TotalAmount: 500, PaidAmount: 500})
	assert.True(t, actionByKey(t, Resolve(paid, "cleaner"), KeyClear).Enabled)

	cleaning := viewWith(model.StatusCleaning, nil)
	cleaningAction := actionByKey(t, Resolve(cleaning, "cleaner"), KeyClear)
	assert.Equal(t, "Finish Cleaning", cleaningAction.Label)
	assert.True(t, cleaningAction.Enabled)
}

func TestResolveCapabilityGating(t *testing.T) {
	view := viewWith(model.StatusAvailable, nil)

	// A cleaner can only clear.
	resolved := Resolve(view, "cleaner")
	assert.False(t, actionByKey(t, resolved, KeyOrder).Enabled)
	assert.False(t, actionByKey(t, resolved, KeyBook).Enabled)
	assert.False(t, actionByKey(t, resolved, KeyBill).Enabled)
	assert.True(t, actionByKey(t, resolved, KeyClear).Enabled)

	// An unknown role can do nothing.
	for _, a := range Resolve(view, "intruder") {
		assert.False(t, a.Enabled)
		assert.Equal(t, reasonNoPermission, a.Reason)
	}

	// Managers hold every capability.
	for _, a := range Resolve(view, "manager") {
		if a.Key == KeyBill {
			continue // no order to bill
		}
		assert.True(t, a.Enabled, "action %s", a.Key)
	}
}

func TestCheckOfflineTransition(t *testing.T) {
	require.NoError(t, CheckOfflineTransition(viewWith(model.StatusAvailable, nil), "manager"))

	for _, status := range []model.TableStatusValue{
		model.StatusOccupied, model.StatusReserved, model.StatusCleaning,
		model.StatusMaintenance, model.StatusUnavailable,
	} {
		err := CheckOfflineTransition(viewWith(status, nil), "manager")
		assert.ErrorIs(t, err, ErrNotAvailable, "status %s", status)
	}

	assert.ErrorIs(t, CheckOfflineTransition(viewWith(model.StatusAvailable, nil), "waiter"), ErrNoPermission)
}

func TestCheckDelete(t *testing.T) {
	require.NoError(t, CheckDelete(viewWith(model.StatusAvailable, nil), "admin"))

	err := CheckDelete(viewWith(model.StatusReserved, nil), "admin")
	assert.ErrorIs(t, err, ErrNotAvailable)

	lingering := viewWith(model.StatusAvailable, &model.OrderSummary{OrderNumber: "ORD-1"})
	assert.ErrorIs(t, CheckDelete(lingering, "admin"), ErrHasOrder)

	assert.ErrorIs(t, CheckDelete(viewWith(model.StatusAvailable, nil), "waiter"), ErrNoPermission)
}
