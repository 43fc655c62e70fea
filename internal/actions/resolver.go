package actions

import (
	"errors"

	"pos-floor-frontend/internal/floorplan"
	"pos-floor-frontend/internal/model"
)

// Keys of the four primary table actions.
const (
	KeyOrder = "order"
	KeyBook  = "book"
	KeyBill  = "bill"
	KeyClear = "clear"
)

// Action is one resolved table action: enabled or disabled, with a
// human-readable reason when disabled.
type Action struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

const reasonNoPermission = "Your role does not permit this action"

// Resolve gates the four primary actions against the table's merged state
// and the staff member's capabilities. Each action is gated independently;
// the first failing check supplies the reason.
func Resolve(view floorplan.TableView, role string) []Action {
	return []Action{
		resolveOrder(view, role),
		resolveBook(view, role),
		resolveBill(view, role),
		resolveClear(view, role),
	}
}

func resolveOrder(view floorplan.TableView, role string) Action {
	a := Action{Key: KeyOrder, Label: "New Order", Enabled: true}
	if view.Status == model.StatusOccupied && view.HasOrder() {
		a.Label = "Continue Order"
	}
	switch {
	case !Allowed(role, CapOrder):
		a.Enabled, a.Reason = false, reasonNoPermission
	case view.Status == model.StatusCleaning:
		a.Enabled, a.Reason = false, "Table is being cleaned"
	}
	return a
}

func resolveBook(view floorplan.TableView, role string) Action {
	a := Action{Key: KeyBook, Label: "Book Table", Enabled: true}
	switch {
	case !Allowed(role, CapBook):
		a.Enabled, a.Reason = false, reasonNoPermission
	case view.Status == model.StatusOccupied:
		a.Enabled, a.Reason = false, "Table is occupied"
	case view.Status == model.StatusReserved:
		a.Enabled, a.Reason = false, "Table is already reserved"
	case view.Status == model.StatusCleaning:
		a.Enabled, a.Reason = false, "Table is being cleaned"
	}
	return a
}

func resolveBill(view floorplan.TableView, role string) Action {
	a := Action{Key: KeyBill, Label: "Bill", Enabled: true}
	switch {
	case !Allowed(role, CapBill):
		a.Enabled, a.Reason = false, reasonNoPermission
	case view.Status != model.StatusOccupied:
		a.Enabled, a.Reason = false, "Table is not occupied"
	case !view.HasOrder():
		a.Enabled, a.Reason = false, "No active order to bill"
	}
	return a
}

func resolveClear(view floorplan.TableView, role string) Action {
	a := Action{Key: KeyClear, Label: "Clear Table", Enabled: true}
	if view.Status == model.StatusCleaning {
		a.Label = "Finish Cleaning"
	}
	switch {
	case !Allowed(role, CapClear):
		a.Enabled, a.Reason = false, reasonNoPermission
	case view.Due > 0:
		a.Enabled, a.Reason = false, "Unpaid balance on current order"
	}
	return a
}

// Errors raised by the transition checks below. Raised entirely client-side,
// before any network call.
var (
	ErrNoPermission = errors.New("role does not permit this action")
	ErrNotAvailable = errors.New("table must be available")
	ErrHasOrder     = errors.New("table has an open order")
)

// CheckOfflineTransition guards setting a table to maintenance or
// unavailable: manage capability plus a currently available table.
func CheckOfflineTransition(view floorplan.TableView, role string) error {
	if !Allowed(role, CapManage) {
		return ErrNoPermission
	}
	if view.Status != model.StatusAvailable {
		return ErrNotAvailable
	}
	return nil
}

// CheckDelete guards table deletion: manage capability, a live status of
// available, and no lingering order on the status record.
func CheckDelete(view floorplan.TableView, role string) error {
	if !Allowed(role, CapManage) {
		return ErrNoPermission
	}
	if view.Status != model.StatusAvailable {
		return ErrNotAvailable
	}
	if view.HasOrder() {
		return ErrHasOrder
	}
	return nil
}
