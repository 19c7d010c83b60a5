package core

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"sync/atomic"
	"testing"
	"time"
)

type fakeWorker struct {
	schedule string
	ready    bool
	runs     atomic.Int32
	executed chan struct{}
}

func (w *fakeWorker) Name() string { return "fake" }
func (w *fakeWorker) Schedule() string { return w.schedule }
func (w *fakeWorker) Ready(time.Time) bool { return w.ready }
func (w *fakeWorker) Execute(context.Context) {
	if w.runs.Add(1) == 1 {
		close(w.executed)
	}
}

func TestOrchestratorRunsReadyWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &fakeWorker{schedule: "@every 1s", ready: true, executed: make(chan struct{})}
	o := NewOrchestrator(zaptest.NewLogger(t), []Worker{w})

	c, err := o.Start(context.Background())
	require.NoError(t, err)

	select {
	case <-w.executed:
	case <-time.After(5 * time.Second):
		t.Fatal("worker was not executed")
	}

	o.Stop(c)
	assert.GreaterOrEqual(t, w.runs.Load(), int32(1))
}

func TestOrchestratorSkipsBusyWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &fakeWorker{schedule: "@every 1s", ready: false, executed: make(chan struct{})}
	o := NewOrchestrator(zaptest.NewLogger(t), []Worker{w})

	c, err := o.Start(context.Background())
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)
	o.Stop(c)

	assert.Equal(t, int32(0), w.runs.Load())
}

func TestOrchestratorRejectsInvalidSchedule(t *testing.T) {
	w := &fakeWorker{schedule: "every now and then"}
	o := NewOrchestrator(zaptest.NewLogger(t), []Worker{w})

	_, err := o.Start(context.Background())
	assert.ErrorContains(t, err, "error adding cron job fake")
}
