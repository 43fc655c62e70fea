package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pos-floor-frontend/internal/model"
	"pos-floor-frontend/internal/reconcile"
	"pos-floor-frontend/internal/store"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PushSubscription{}, &model.TableInterest{}))
	return store.NewGormStore(db)
}

func pushResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString("")),
	}
}

func TestWorkerPoolDispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestStore(t), &webpush.Options{}, testLogger())

	change := reconcile.StatusChange{TableID: "t1", Label: "T01", To: model.StatusAvailable}
	wp.Dispatch(change)

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, change, job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerSendsToInterestedSubscriptions(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, st.UpsertSubscription(ctx, model.PushSubscription{
		Endpoint: "https://push.example/ep", P256DH: "key", Auth: "auth",
	}, []string{"t1"}))

	wp := NewWorkerPool(1, st, &webpush.Options{}, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, _ *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://push.example/ep", sub.Endpoint)
			assert.Equal(t, "Table T01 is now free", string(payload))
			wg.Done()
			return pushResponse(http.StatusCreated), nil
		},
	}

	wp.Start(ctx)
	wp.Dispatch(reconcile.StatusChange{TableID: "t1", Label: "T01", To: model.StatusAvailable})
	wg.Wait()
}

func TestWorkerPrunesExpiredSubscription(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, st.UpsertSubscription(ctx, model.PushSubscription{
		Endpoint: "https://push.example/expired", P256DH: "key", Auth: "auth",
	}, []string{"t2"}))

	wp := NewWorkerPool(1, st, &webpush.Options{}, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func([]byte, *webpush.Subscription, *webpush.Options) (*http.Response, error) {
			wg.Done()
			return pushResponse(http.StatusGone), nil
		},
	}

	wp.Start(ctx)
	wp.Dispatch(reconcile.StatusChange{TableID: "t2", Label: "T02", To: model.StatusCleaning})
	wg.Wait()

	// The 410 should have removed the subscription. Poll briefly since the
	// prune happens after the sender returns.
	assert.Eventually(t, func() bool {
		subs, err := st.SubscriptionsForTable(ctx, "t2")
		return err == nil && len(subs) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Table T05 is now free",
		Message(reconcile.StatusChange{TableID: "t5", Label: "T05", To: model.StatusAvailable}))
	assert.Equal(t, "Table T05 needs cleaning",
		Message(reconcile.StatusChange{TableID: "t5", Label: "T05", To: model.StatusCleaning}))
	assert.Equal(t, "Table t5 is now reserved",
		Message(reconcile.StatusChange{TableID: "t5", To: model.StatusReserved}))
}
