package gameserver

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type tickTask struct {
	interval time.Duration
	fn       func(ctx context.Context)
}

// Ticker runs named periodic tasks, each on its own schedule.
//
// It implements server.Service: Start blocks until Stop.
type Ticker struct {
	mu     sync.Mutex
	tasks  map[string]tickTask
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTicker returns a Ticker with no tasks.
//
// Precondition: logger must be non-nil.
func NewTicker(logger *zap.Logger) *Ticker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Ticker{
		tasks:  make(map[string]tickTask),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds fn under name, replacing any task with the same name.
// Tasks registered after Start are not scheduled.
//
// Precondition: interval must be > 0.
func (t *Ticker) Register(name string, interval time.Duration, fn func(ctx context.Context)) {
	if interval <= 0 {
		panic("gameserver.Ticker.Register: interval must be > 0")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks[name] = tickTask{interval: interval, fn: fn}
}

// Start schedules every registered task and blocks until Stop.
//
// Postcondition: each task runs at most once per interval and never
// overlaps itself.
func (t *Ticker) Start() error {
	t.mu.Lock()
	names := make([]string, 0, len(t.tasks))
	for name := range t.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		task := t.tasks[name]
		t.wg.Add(1)
		go t.loop(name, task)
	}
	t.mu.Unlock()

	<-t.ctx.Done()
	t.wg.Wait()
	return nil
}

func (t *Ticker) loop(name string, task tickTask) {
	defer t.wg.Done()
	ticker := time.NewTicker(task.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			task.fn(t.ctx)
			t.logger.Debug("tick", zap.String("task", name), zap.Duration("elapsed", time.Since(start)))
		}
	}
}

// Stop cancels every task. It is idempotent.
func (t *Ticker) Stop() {
	t.cancel()
}
