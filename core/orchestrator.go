package core

import (
	"context"
	"fmt"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"sync"
	"time"
)

type Orchestrator struct {
	logger  *zap.Logger
	workers []Worker
	wg      sync.WaitGroup
}

func NewOrchestrator(logger *zap.Logger, workers []Worker) *Orchestrator {
	return &Orchestrator{logger: logger, workers: workers}
}

// Start registers every worker on its schedule and starts the cron runner.
// Executions receive ctx and stop being scheduled once ctx is done.
func (o *Orchestrator) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()

	for _, worker := range o.workers {
		_, err := c.AddFunc(worker.Schedule(), func() {
			if ctx.Err() != nil || !worker.Ready(time.Now()) {
				return
			}

			o.wg.Add(1)
			go func() {
				defer o.wg.Done()
				worker.Execute(ctx)
			}()
		})

		if err != nil {
			return nil, fmt.Errorf("error adding cron job %s: %w", worker.Name(), err)
		}

		o.logger.Info("Worker scheduled",
			zap.String("worker", worker.Name()),
			zap.String("schedule", worker.Schedule()),
		)
	}

	c.Start()
	return c, nil
}

// Stop stops the cron runner and waits for running executions to return.
func (o *Orchestrator) Stop(c *cron.Cron) {
	<-c.Stop().Done()
	o.wg.Wait()
}
