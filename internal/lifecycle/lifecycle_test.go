package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// blockingService runs until stopped.
type blockingService struct {
	started atomic.Bool
	stop    chan struct{}
	once    sync.Once
	onStop  func()
}

func newBlocking(onStop func()) *blockingService {
	return &blockingService{stop: make(chan struct{}), onStop: onStop}
}

func (b *blockingService) Start() error {
	b.started.Store(true)
	<-b.stop
	return nil
}

func (b *blockingService) Stop() {
	b.once.Do(func() {
		if b.onStop != nil {
			b.onStop()
		}
		close(b.stop)
	})
}

func waitStarted(t *testing.T, svcs ...*blockingService) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, s := range svcs {
			if !s.started.Load() {
				return false
			}
		}
		return true
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRun_ContextCancelStopsInReverseOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	lc := NewLifecycle(zaptest.NewLogger(t))
	first := newBlocking(record("first"))
	second := newBlocking(record("second"))
	lc.Add("first", first)
	lc.Add("second", second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	waitStarted(t, first, second)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestRun_FinishedServiceEndsRun(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	watcher := newBlocking(nil)
	lc.Add("watcher", watcher)
	lc.Add("arena", &FuncService{
		StartFn: func() error { return nil },
		StopFn:  func() {},
	})

	require.NoError(t, lc.Run(context.Background()))
	select {
	case <-watcher.stop:
	default:
		t.Fatal("watcher was not stopped")
	}
}

func TestRun_FailingServiceReturnsWrappedError(t *testing.T) {
	boom := errors.New("boom")
	lc := NewLifecycle(zaptest.NewLogger(t))
	stopped := false
	lc.Add("arena", &FuncService{
		StartFn: func() error { return boom },
		StopFn:  func() { stopped = true },
	})

	err := lc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service arena")
	assert.True(t, stopped)
}

func TestFuncService(t *testing.T) {
	started, stopped := false, false
	svc := &FuncService{
		StartFn: func() error {
			started = true
			return nil
		},
		StopFn: func() { stopped = true },
	}

	assert.NoError(t, svc.Start())
	svc.Stop()
	assert.True(t, started)
	assert.True(t, stopped)
}
