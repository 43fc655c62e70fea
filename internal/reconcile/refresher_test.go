package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-floor-frontend/config"
	"pos-floor-frontend/internal/model"
)

type recordingSink struct {
	changes []StatusChange
}

func (r *recordingSink) Dispatch(change StatusChange) {
	r.changes = append(r.changes, change)
}

func TestRefresherDispatchesOnlyNotifyStatuses(t *testing.T) {
	fake := seededBackend()
	svc := loadedService(t, fake)

	sink := &recordingSink{}
	refresher := NewRefresher(svc, &config.RefreshConfig{
		Enabled:        true,
		NotifyStatuses: []string{"available", "cleaning"},
	}, sink, testLogger())

	// t1 moves into the notify set, t2 moves out of it.
	fake.mu.Lock()
	fake.statuses = []model.TableStatus{
		{TableID: "t1", Status: model.StatusCleaning},
		{TableID: "t2", Status: model.StatusOccupied},
	}
	fake.mu.Unlock()

	refresher.refreshOnce(context.Background())

	require.Len(t, sink.changes, 1)
	assert.Equal(t, "t1", sink.changes[0].TableID)
	assert.Equal(t, model.StatusOccupied, sink.changes[0].From)
	assert.Equal(t, model.StatusCleaning, sink.changes[0].To)
}

func TestRefresherToleratesNilSink(t *testing.T) {
	fake := seededBackend()
	svc := loadedService(t, fake)

	refresher := NewRefresher(svc, &config.RefreshConfig{
		Enabled:        true,
		NotifyStatuses: []string{"available"},
	}, nil, testLogger())

	// t1 frees up; with no sink configured the change is simply dropped.
	fake.mu.Lock()
	fake.statuses = []model.TableStatus{
		{TableID: "t1", Status: model.StatusAvailable},
		{TableID: "t2", Status: model.StatusReserved},
	}
	fake.mu.Unlock()

	refresher.refreshOnce(context.Background())

	snap, ok := svc.Snapshot()
	require.True(t, ok)
	assert.Equal(t, model.StatusAvailable, snap.Statuses.StatusFor("t1").Status)
}

func TestRefresherKeepsSnapshotOnFailedRefresh(t *testing.T) {
	fake := seededBackend()
	svc := loadedService(t, fake)

	sink := &recordingSink{}
	refresher := NewRefresher(svc, &config.RefreshConfig{
		Enabled:        true,
		NotifyStatuses: []string{"available"},
	}, sink, testLogger())

	fake.mu.Lock()
	fake.failStatuses = true
	fake.mu.Unlock()

	refresher.refreshOnce(context.Background())

	assert.Empty(t, sink.changes)
	snap, ok := svc.Snapshot()
	require.True(t, ok)
	assert.Equal(t, model.StatusOccupied, snap.Statuses.StatusFor("t1").Status)
}
