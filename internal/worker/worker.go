package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrShutdownTimeout is returned by Shutdown when tasks outlive the timeout.
var ErrShutdownTimeout = errors.New("worker: shutdown timeout exceeded")

// Pool runs long-lived process tasks (servers, watchers). The first task to
// fail cancels the shared context so the others wind down.
type Pool struct {
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewPool creates a pool whose context derives from parent
func NewPool(parent context.Context, logger *slog.Logger) *Pool {
	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)
	return &Pool{
		group:  group,
		ctx:    gctx,
		cancel: cancel,
		logger: logger,
	}
}

// Submit starts task in its own goroutine. A non-nil error (other than
// context.Canceled) is logged and cancels the pool.
func (p *Pool) Submit(name string, task func(ctx context.Context) error) {
	p.group.Go(func() error {
		p.logger.Debug("▶️ [Worker] Task started", "task", name)
		err := task(p.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("❌ [Worker] Task failed", "task", name, "error", err)
			return err
		}
		p.logger.Debug("⏹️ [Worker] Task finished", "task", name)
		return nil
	})
}

// Context returns the pool's context. It is done once Shutdown is called or
// a task fails.
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Wait blocks until every task returns and reports the first failure.
func (p *Pool) Wait() error {
	err := p.group.Wait()
	p.cancel()
	return err
}

// Shutdown cancels every task and waits up to timeout for them to return.
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.logger.Info("🛑 [Worker] Initiating graceful shutdown...")
	p.cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.group.Wait()
	}()

	select {
	case err := <-done:
		p.logger.Info("✅ [Worker] All background tasks completed")
		return err
	case <-time.After(timeout):
		p.logger.Warn("⚠️ [Worker] Shutdown timeout exceeded, some tasks may not have completed",
			"timeout", timeout,
		)
		return ErrShutdownTimeout
	}
}
