// Package notification pushes table-status alerts to subscribed staff
// browsers through web push.
package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"

	"pos-floor-frontend/internal/model"
	"pos-floor-frontend/internal/reconcile"
	"pos-floor-frontend/internal/store"
)

// Sender sends a single web push notification. Split out so tests can swap
// the network away.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans table-status changes out to interested subscriptions.
type WorkerPool struct {
	size    int
	jobs    chan reconcile.StatusChange
	store   store.Store
	webpush *webpush.Options
	sender  Sender
	log     *logrus.Logger
}

// NewWorkerPool creates a worker pool of the given size.
func NewWorkerPool(size int, st store.Store, webpushOptions *webpush.Options, log *logrus.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan reconcile.StatusChange, size),
		store:   st,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.log.WithField("worker", id).Debug("notification worker started")
	for {
		select {
		case change := <-wp.jobs:
			wp.notify(ctx, change)
		case <-ctx.Done():
			wp.log.WithField("worker", id).Debug("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues one status change. Implements reconcile.ChangeSink.
func (wp *WorkerPool) Dispatch(change reconcile.StatusChange) {
	wp.jobs <- change
}

// Jobs exposes the job channel for tests.
func (wp *WorkerPool) Jobs() chan reconcile.StatusChange {
	return wp.jobs
}

func (wp *WorkerPool) notify(ctx context.Context, change reconcile.StatusChange) {
	subs, err := wp.store.SubscriptionsForTable(ctx, change.TableID)
	if err != nil {
		wp.log.WithError(err).WithField("table", change.TableID).
			Error("failed to fetch subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	payload := []byte(Message(change))
	wp.log.WithFields(logrus.Fields{
		"table":         change.TableID,
		"status":        change.To,
		"subscriptions": len(subs),
	}).Info("sending push notifications")

	for _, sub := range subs {
		wp.send(ctx, sub, payload)
	}
}

// Message renders the push payload for a status change.
func Message(change reconcile.StatusChange) string {
	label := change.Label
	if label == "" {
		label = change.TableID
	}
	switch change.To {
	case model.StatusAvailable:
		return fmt.Sprintf("Table %s is now free", label)
	case model.StatusCleaning:
		return fmt.Sprintf("Table %s needs cleaning", label)
	default:
		return fmt.Sprintf("Table %s is now %s", label, change.To)
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.WithError(err).WithField("endpoint", sub.Endpoint).
			Error("failed to send notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.log.WithField("endpoint", sub.Endpoint).Info("pruning expired subscription")
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			wp.log.WithError(err).Error("failed to delete expired subscription")
		}
	}
}
