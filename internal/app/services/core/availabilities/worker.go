package availabilities

import (
	"context"
	"errors"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackSnapshotCronSpec = "@hourly"

// SnapshotWorker periodically publishes the availability snapshot.
type SnapshotWorker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	usecase contracts.AvailabilityUsecase
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewSnapshotWorker(log *zap.Logger, cfg *config.InternalConfig, usecase contracts.AvailabilityUsecase) *SnapshotWorker {
	return &SnapshotWorker{log: log, cfg: cfg, usecase: usecase}
}

// Start schedules the snapshot job. An invalid cron spec falls back to hourly runs.
func (w *SnapshotWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.SnapshotCronSpec
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("availabilities.SnapshotWorker failed to schedule with provided cron spec; falling back to @hourly",
			zap.String("cron_spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackSnapshotCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels an in-flight run and waits for it to return.
func (w *SnapshotWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

// RunOnce publishes one snapshot. Losing the leader election is not an error.
func (w *SnapshotWorker) RunOnce(ctx context.Context) {
	requestID := utils.GenerateRequestID()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
	if timeout := w.cfg.SnapshotTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	published, err := w.usecase.PublishSnapshot(ctx)
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.DevMessage == constvars.ErrDevSnapshotAlreadyRunning {
			w.log.Info("availabilities.SnapshotWorker leader lock held by another instance",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return
		}
		w.log.Warn("availabilities.SnapshotWorker snapshot failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	w.log.Info("availabilities.SnapshotWorker snapshot published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, published.ObjectName),
		zap.Int(constvars.LoggingCountKey, published.Count),
	)
}
