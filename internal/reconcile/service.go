// Package reconcile owns the authoritative in-memory copy of the layout and
// live statuses, keeps it in sync with the backend, and applies guarded
// mutations on behalf of the UI.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pos-floor-frontend/internal/floorplan"
	"pos-floor-frontend/internal/model"
	"pos-floor-frontend/internal/parse"
)

// Backend is the slice of the REST client the service depends on.
type Backend interface {
	GetLayout(ctx context.Context) (model.Layout, error)
	SaveLayout(ctx context.Context, layout model.Layout) error
	ListTableStatuses(ctx context.Context) ([]model.TableStatus, error)
	UpdateTableStatus(ctx context.Context, tableID string, status model.TableStatusValue) error
	ListMenu(ctx context.Context) ([]model.MenuItem, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListCompletedOrders(ctx context.Context) ([]model.Order, error)
	ListInventory(ctx context.Context) ([]model.InventoryItem, error)
	GetDashboardStats(ctx context.Context) (model.BackendStats, error)
	GetOperationalInsights(ctx context.Context) ([]model.OperationalInsight, error)
}

// Errors raised locally, before any network call.
var (
	ErrNotLoaded     = errors.New("no snapshot loaded yet")
	ErrUnknownFloor  = errors.New("floor not found")
	ErrUnknownTable  = errors.New("table not found")
	ErrTableOccupied = errors.New("table is occupied")
	ErrNotAvailable  = errors.New("table is not available")
	ErrBadStatus     = errors.New("unknown status value")
	ErrUnpaidBalance = errors.New("unpaid balance on current order")
)

// Snapshot is one consistent view of everything the pages need. It is
// replaced wholesale on refresh, never patched.
type Snapshot struct {
	Layout          model.Layout
	Statuses        model.StatusIndex
	Orders          []model.Order
	CompletedOrders []model.Order
	Menu            []model.MenuItem
	Inventory       []model.InventoryItem
	BackendStats    model.BackendStats
	Insights        []model.OperationalInsight
	FetchedAt       time.Time
}

// StatusChange records one table's status transition between two snapshots.
type StatusChange struct {
	TableID string
	Label   string
	From    model.TableStatusValue
	To      model.TableStatusValue
}

// Service reconciles backend state into snapshots and runs mutations.
type Service struct {
	backend Backend
	log     *logrus.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// New creates a reconciliation service. The snapshot starts empty; pages
// report a loading state until the first successful Refresh.
func New(b Backend, log *logrus.Logger) *Service {
	return &Service{backend: b, log: log}
}

// Loaded reports whether a snapshot is available.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// Snapshot returns the current snapshot, or false while still loading.
func (s *Service) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, false
	}
	return s.snap, true
}

// Refresh fetches every feed concurrently and swaps in a new snapshot only
// when all of them succeeded. A failed refresh leaves the previous snapshot
// in place untouched. The returned changes are the tables whose resolved
// status differs from the previous snapshot; the first load reports none.
func (s *Service) Refresh(ctx context.Context) ([]StatusChange, error) {
	next, err := s.fetchSnapshot(ctx)
	if err != nil {
		s.log.WithError(err).Error("snapshot refresh failed")
		return nil, err
	}

	s.mu.Lock()
	prev := s.snap
	s.snap = next
	s.mu.Unlock()

	changes := diffStatuses(prev, next)
	s.log.WithFields(logrus.Fields{
		"floors":  len(next.Layout.EffectiveFloors()),
		"changes": len(changes),
	}).Info("snapshot refreshed")
	return changes, nil
}

// fetchSnapshot loads all feeds in parallel, all-or-nothing.
func (s *Service) fetchSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{FetchedAt: time.Now().UTC()}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		statuses []model.TableStatus
	)
	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("fetch %s: %w", name, err)
				}
				mu.Unlock()
			}
		}()
	}

	fetch("layout", func() error {
		var err error
		snap.Layout, err = s.backend.GetLayout(ctx)
		return err
	})
	fetch("statuses", func() error {
		var err error
		statuses, err = s.backend.ListTableStatuses(ctx)
		return err
	})
	fetch("orders", func() error {
		var err error
		snap.Orders, err = s.backend.ListOrders(ctx)
		return err
	})
	fetch("completed orders", func() error {
		var err error
		snap.CompletedOrders, err = s.backend.ListCompletedOrders(ctx)
		return err
	})
	fetch("menu", func() error {
		var err error
		snap.Menu, err = s.backend.ListMenu(ctx)
		return err
	})
	fetch("inventory", func() error {
		var err error
		snap.Inventory, err = s.backend.ListInventory(ctx)
		return err
	})
	fetch("dashboard stats", func() error {
		var err error
		snap.BackendStats, err = s.backend.GetDashboardStats(ctx)
		return err
	})
	fetch("insights", func() error {
		var err error
		snap.Insights, err = s.backend.GetOperationalInsights(ctx)
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	snap.Statuses = model.IndexStatuses(statuses)
	return snap, nil
}

// diffStatuses resolves every table of the new layout against both status
// indexes and reports the transitions.
func diffStatuses(prev, next *Snapshot) []StatusChange {
	if prev == nil {
		return nil
	}
	var changes []StatusChange
	for _, f := range next.Layout.EffectiveFloors() {
		for _, t := range f.Tables {
			from := prev.Statuses.StatusFor(t.ID).Status
			to := next.Statuses.StatusFor(t.ID).Status
			if from != to {
				changes = append(changes, StatusChange{
					TableID: t.ID,
					Label:   t.Label,
					From:    from,
					To:      to,
				})
			}
		}
	}
	return changes
}

// SelectTable merges a layout table with its live status into the view-model
// the action UI opens on.
func (s *Service) SelectTable(tableID string) (floorplan.TableView, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return floorplan.TableView{}, ErrNotLoaded
	}
	table, found := snap.Layout.FindTable(tableID)
	if !found {
		return floorplan.TableView{}, ErrUnknownTable
	}
	return floorplan.BuildTableView(table, snap.Statuses), nil
}

// SetTableStatus persists a status change for one table. Precondition
// violations are rejected locally with no request sent: an occupied table
// rejects every target, and maintenance/unavailable require the table to be
// available first. A successful mutation triggers a full re-fetch.
func (s *Service) SetTableStatus(ctx context.Context, tableID string, target model.TableStatusValue) error {
	if !target.Known() {
		return ErrBadStatus
	}
	snap, ok := s.Snapshot()
	if !ok {
		return ErrNotLoaded
	}
	if _, found := snap.Layout.FindTable(tableID); !found {
		return ErrUnknownTable
	}

	current := snap.Statuses.StatusFor(tableID).Status
	if current == model.StatusOccupied {
		return ErrTableOccupied
	}
	if (target == model.StatusMaintenance || target == model.StatusUnavailable) &&
		current != model.StatusAvailable {
		return ErrNotAvailable
	}

	if err := s.backend.UpdateTableStatus(ctx, tableID, target); err != nil {
		return err
	}

	if _, err := s.Refresh(ctx); err != nil {
		// The mutation is already persisted; the stale snapshot heals on
		// the next refresh cycle.
		s.log.WithError(err).Warn("re-fetch after status update failed")
	}
	return nil
}

// ClearTable resets a table to available after service. Clearing a settled
// table is exactly the occupied-to-available transition, so unlike
// SetTableStatus it accepts occupied tables; the only local guard is an
// unpaid balance on the current order.
func (s *Service) ClearTable(ctx context.Context, tableID string) error {
	snap, ok := s.Snapshot()
	if !ok {
		return ErrNotLoaded
	}
	table, found := snap.Layout.FindTable(tableID)
	if !found {
		return ErrUnknownTable
	}

	if floorplan.BuildTableView(table, snap.Statuses).Due > 0 {
		return ErrUnpaidBalance
	}

	if err := s.backend.UpdateTableStatus(ctx, tableID, model.StatusAvailable); err != nil {
		return err
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.log.WithError(err).Warn("re-fetch after status update failed")
	}
	return nil
}

// AddTable appends a new table with the next sequential label and default
// geometry to the given floor, persists the whole layout, and applies the
// change to the in-memory copy only after the persist succeeds.
func (s *Service) AddTable(ctx context.Context, floorID string) (model.Table, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return model.Table{}, ErrNotLoaded
	}
	floor, found := snap.Layout.FindFloor(floorID)
	if !found {
		return model.Table{}, ErrUnknownFloor
	}

	labels := make([]string, len(floor.Tables))
	for i, t := range floor.Tables {
		labels[i] = t.Label
	}

	table := model.Table{
		ID:       newTableID(),
		Label:    parse.NextLabel(labels),
		X:        50,
		Y:        50,
		Width:    100,
		Height:   60,
		Shape:    model.ShapeRectangle,
		Capacity: 4,
	}

	next := snap.Layout.Clone()
	if !next.AppendTable(floorID, table) {
		return model.Table{}, ErrUnknownFloor
	}
	if err := s.persistLayout(ctx, snap, next); err != nil {
		return model.Table{}, err
	}

	s.log.WithFields(logrus.Fields{"table": table.Label, "floor": floorID}).Info("table added")
	return table, nil
}

// DeleteTable removes a table from a floor and persists the whole layout.
// The table's live status must be available; the check runs against the
// status feed, not the layout.
func (s *Service) DeleteTable(ctx context.Context, floorID, tableID string) error {
	snap, ok := s.Snapshot()
	if !ok {
		return ErrNotLoaded
	}
	if _, found := snap.Layout.FindFloor(floorID); !found {
		return ErrUnknownFloor
	}

	status := snap.Statuses.StatusFor(tableID)
	if status.Status != model.StatusAvailable || status.CurrentOrder != nil {
		return ErrNotAvailable
	}

	next := snap.Layout.Clone()
	if !next.RemoveTable(floorID, tableID) {
		return ErrUnknownTable
	}
	if err := s.persistLayout(ctx, snap, next); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"table": tableID, "floor": floorID}).Info("table deleted")
	return nil
}

// persistLayout saves the modified document and, on success, swaps it into
// the snapshot. The swap is skipped if another refresh replaced the snapshot
// while the save was in flight; the refreshed state then wins.
func (s *Service) persistLayout(ctx context.Context, base *Snapshot, next model.Layout) error {
	if err := s.backend.SaveLayout(ctx, next); err != nil {
		return err
	}

	s.mu.Lock()
	if s.snap == base {
		updated := *base
		updated.Layout = next
		s.snap = &updated
	}
	s.mu.Unlock()
	return nil
}

func newTableID() string {
	return "table-" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
