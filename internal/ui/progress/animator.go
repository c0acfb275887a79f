package progress

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/inkwell/internal/log"
)

// DefaultInterval is the refresh cadence of an [Animator].
const DefaultInterval = 100 * time.Millisecond

// AnimatorOption configures an [Animator].
type AnimatorOption func(*animatorConfig)

type animatorConfig struct {
	interval          time.Duration
	clearWhenFinished bool
}

// WithInterval sets the time between refreshes.
func WithInterval(d time.Duration) AnimatorOption {
	return func(c *animatorConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithFPS sets the refresh rate in frames per second.
func WithFPS(fps int) AnimatorOption {
	return func(c *animatorConfig) {
		if fps > 0 {
			c.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithClearWhenFinished erases the tasks once they are all finished instead
// of leaving the final frame on screen.
func WithClearWhenFinished(enabled bool) AnimatorOption {
	return func(c *animatorConfig) {
		c.clearWhenFinished = enabled
	}
}

// Animator refreshes an [Animation] on a fixed cadence.
type Animator[T any] struct {
	anim *Animation[T]
	cfg  animatorConfig

	mu sync.Mutex
	g  *errgroup.Group
}

// NewAnimator returns an animator for a.
func NewAnimator[T any](a *Animation[T], opts ...AnimatorOption) *Animator[T] {
	cfg := animatorConfig{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Animator[T]{anim: a, cfg: cfg}
}

// Run refreshes the animation until every task is finished or ctx is done.
// A refresh that is in progress always completes. The final frame is drawn
// with every cell refreshed.
func (r *Animator[T]) Run(ctx context.Context) error {
	l := log.FromContext(ctx)
	l.Debug("progress animation started", "interval", r.cfg.interval)

	ticker := time.NewTicker(r.cfg.interval)
	defer ticker.Stop()

	for !r.anim.Finished() {
		if err := r.anim.Refresh(false); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			l.Debug("progress animation cancelled", "err", ctx.Err())
			if err := r.anim.Refresh(true); err != nil {
				return err
			}
			if err := r.anim.Stop(); err != nil {
				return err
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}

	l.Debug("progress animation finished", "tasks", len(r.anim.Tasks()))
	if err := r.anim.Refresh(true); err != nil {
		return err
	}
	if r.cfg.clearWhenFinished {
		return r.anim.Clear()
	}
	return r.anim.Stop()
}

// Start runs the animator in the background. Use [Animator.Wait] to wait
// for it to return.
func (r *Animator[T]) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		return r.Run(ctx)
	})
	r.g = &g
}

// Wait blocks until the animator started by [Animator.Start] returns and
// reports its error. It returns nil if the animator was never started.
func (r *Animator[T]) Wait() error {
	r.mu.Lock()
	g := r.g
	r.mu.Unlock()

	if g == nil {
		return nil
	}
	return g.Wait()
}
