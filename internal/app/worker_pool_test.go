//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingRunner struct {
	mu    sync.Mutex
	ran   []string
	fail  string
	block chan struct{}
}

func (r *recordingRunner) RunJob(ctx context.Context, jobID string) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, jobID)
	if jobID == r.fail {
		return errors.New("boom")
	}
	return nil
}

func (r *recordingRunner) jobs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ran...)
}

func newTestPool(t *testing.T, workers, queue int) (*WorkerPool, *testutil.RecordingLogger) {
	t.Helper()
	log := testutil.NewRecordingLogger()
	pool, err := NewWorkerPool(&config.ProcessingSettings{Workers: workers, QueueSize: queue, StorageDir: t.TempDir()}, log)
	require.NoError(t, err)
	return pool, log
}

func TestWorkerPool_RunsQueuedJobsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool, log := newTestPool(t, 2, 8)
	runner := &recordingRunner{fail: "job-2"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx, runner) }()

	for _, id := range []string{"job-1", "job-2", "job-3"} {
		require.NoError(t, pool.Enqueue(id))
	}

	assert.Eventually(t, func() bool { return len(runner.jobs()) == 3 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker pool did not stop")
	}

	assert.ElementsMatch(t, []string{"job-1", "job-2", "job-3"}, runner.jobs())
	assert.Equal(t, 1, log.Count("error"))
}

func TestWorkerPool_DrainsQueueOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool, _ := newTestPool(t, 1, 4)
	runner := &recordingRunner{block: make(chan struct{})}

	require.NoError(t, pool.Enqueue("a"))
	require.NoError(t, pool.Enqueue("b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx, runner) }()
	close(runner.block)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker pool did not stop")
	}
	assert.ElementsMatch(t, []string{"a", "b"}, runner.jobs())
}

func TestWorkerPool_EnqueueQueueFull(t *testing.T) {
	pool, _ := newTestPool(t, 1, 1)

	require.NoError(t, pool.Enqueue("first"))
	err := pool.Enqueue("second")
	assert.True(t, errors.Is(err, processing.ErrQueueFull))
}

func TestNewWorkerPool_InvalidSettings(t *testing.T) {
	_, err := NewWorkerPool(&config.ProcessingSettings{Workers: 0, QueueSize: 1, StorageDir: "x"}, testutil.NewRecordingLogger())
	assert.Error(t, err)
}
