package stats

import (
	"context"
	"go.uber.org/zap"
	"invoice-service/metrics"
	"sync/atomic"
	"time"
)

// Counter is implemented by the entity services.
type Counter interface {
	CountAll(ctx context.Context) (int64, error)
}

// Worker periodically publishes the number of stored entities.
type Worker struct {
	logger   *zap.Logger
	schedule string
	counters map[string]Counter
	busy     atomic.Bool
}

func NewWorker(logger *zap.Logger, schedule string, counters map[string]Counter) *Worker {
	return &Worker{
		logger:   logger.Named("stats"),
		schedule: schedule,
		counters: counters,
	}
}

func (w *Worker) Name() string {
	return "stats"
}

func (w *Worker) Schedule() string {
	return w.schedule
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *Worker) Execute(ctx context.Context) {
	if !w.busy.CompareAndSwap(false, true) {
		return
	}
	defer w.busy.Store(false)

	w.logger.Debug("Starting entity count refresh.")

	ok := true
	for entity, counter := range w.counters {
		count, err := counter.CountAll(ctx)
		if err != nil {
			w.logger.Error("Failed to count entities",
				zap.String("entity", entity),
				zap.Error(err),
			)
			ok = false
			continue
		}

		metrics.SetEntityCount(entity, count)
		w.logger.Info("Entity count refreshed",
			zap.String("entity", entity),
			zap.Int64("count", count),
		)
	}

	metrics.RecordWorkerRun(w.Name(), ok)
}
