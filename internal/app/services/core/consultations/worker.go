package consultations

import (
	"context"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// leaderLockKey is the fixed key used to ensure a single sweeper leader.
const leaderLockKey = "consultation-sweeper:leader"

const fallbackCronSpec = "@every 5m"

// Worker periodically cancels consultations that were never started.
type Worker struct {
	log                 *zap.Logger
	cfg                 *config.InternalConfig
	locker              contracts.LockerService
	consultationUsecase contracts.ConsultationUsecase
	stop                chan struct{}
	cron                *cron.Cron
	runCtx              context.Context
	cancel              context.CancelFunc
}

// NewWorker builds the expiry sweeper. A nil locker runs every tick without
// leader election, which is only correct for a single instance.
func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, consultationUsecase contracts.ConsultationUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, consultationUsecase: consultationUsecase, stop: make(chan struct{})}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Consultation.SweeperCronSpec
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("consultation.worker: failed to schedule with provided cron spec; falling back",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for an in-flight sweep to finish.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) RunOnce(ctx context.Context) {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())

	if w.locker != nil {
		ttl := time.Duration(w.cfg.Consultation.SweeperLeaderLockTTLSec) * time.Second
		if ttl <= 0 {
			ttl = 2 * time.Minute
		}
		lease, err := w.locker.Acquire(ctx, leaderLockKey, ttl)
		if err != nil {
			w.log.Warn("consultation.worker: leader lock attempt failed", zap.Error(err))
			return
		}
		if lease == nil {
			w.log.Info("consultation.worker: leader lock not acquired; another instance is running")
			return
		}
		defer func() {
			if err := w.locker.Release(context.WithoutCancel(ctx), lease); err != nil {
				w.log.Warn("consultation.worker: failed to release leader lock", zap.Error(err))
			}
		}()

		refreshCtx, cancelRefresh := context.WithCancel(ctx)
		defer cancelRefresh()
		go w.refreshLeaderLock(refreshCtx, lease)
	}

	grace := time.Duration(w.cfg.Consultation.ExpiryGraceInMinutes) * time.Minute
	cutoff := time.Now().Add(-grace)
	cancelled, err := w.consultationUsecase.CancelExpired(ctx, cutoff)
	if err != nil {
		w.log.Warn("consultation.worker: sweep failed", zap.Error(err))
		return
	}
	if cancelled > 0 {
		w.log.Info("consultation.worker: cancelled expired consultations", zap.Int(constvars.LoggingCountKey, cancelled))
	}
}

// refreshLeaderLock extends the lease at half its TTL until ctx ends.
func (w *Worker) refreshLeaderLock(ctx context.Context, lease *contracts.Lease) {
	tick := time.NewTicker(lease.TTL / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-tick.C:
			if err := w.locker.Extend(ctx, lease); err != nil {
				w.log.Warn("consultation.worker: failed to refresh leader lock TTL", zap.Error(err))
			}
		}
	}
}
