package reconcile

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"pos-floor-frontend/config"
	"pos-floor-frontend/internal/model"
)

// ChangeSink receives status transitions worth alerting staff about.
type ChangeSink interface {
	Dispatch(change StatusChange)
}

// Refresher periodically refreshes the snapshot in the background and feeds
// interesting transitions to the notification sink. The UI still polls this
// service; the refresher only keeps the snapshot warm and drives alerts.
type Refresher struct {
	svc      *Service
	sink     ChangeSink
	log      *logrus.Logger
	interval time.Duration
	enabled  bool
	notify   map[model.TableStatusValue]bool
}

// NewRefresher builds a refresher from configuration. sink may be nil when
// push notifications are not configured.
func NewRefresher(svc *Service, cfg *config.RefreshConfig, sink ChangeSink, log *logrus.Logger) *Refresher {
	notify := make(map[model.TableStatusValue]bool, len(cfg.NotifyStatuses))
	for _, s := range cfg.NotifyStatuses {
		notify[model.TableStatusValue(s)] = true
	}
	return &Refresher{
		svc:      svc,
		sink:     sink,
		log:      log,
		interval: cfg.Interval,
		enabled:  cfg.Enabled,
		notify:   notify,
	}
}

// Run performs an immediate refresh and then loops until the context ends.
func (r *Refresher) Run(ctx context.Context) {
	if !r.enabled {
		r.log.Info("background refresher is disabled, not starting")
		return
	}
	r.log.WithField("interval", r.interval).Info("starting background refresher")

	r.refreshOnce(ctx)

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("background refresher shutting down")
			return
		case <-timer.C:
			r.refreshOnce(ctx)
			timer.Reset(r.interval)
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	changes, err := r.svc.Refresh(ctx)
	if err != nil {
		// Already logged by the service; the stale snapshot stays live.
		return
	}
	if r.sink == nil {
		return
	}
	for _, c := range changes {
		if r.notify[c.To] {
			r.sink.Dispatch(c)
		}
	}
}
