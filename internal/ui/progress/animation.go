// Package progress draws live progress for one or more tasks.
//
// An [Animation] owns a set of [Task]s. Each task is drawn as a row laid out
// by its [Definition]: an ordered list of cells such as a bar, a percentage,
// or a spinner. Every cell redraws at its own rate; [Animation.Refresh] reuses
// the previous rendering of cells that are not due yet.
//
// Producers update tasks from any goroutine while an [Animator] refreshes the
// display on a fixed cadence:
//
//	a := progress.NewAnimation[string](t)
//	def := progress.NewDefinition(
//		progress.TextFunc(func(s progress.State[string]) string { return s.Context }),
//		progress.BarCell[string](0),
//		progress.PercentageCell[string](),
//	)
//	task := a.AddTask(def, "download", progress.WithTotal(100))
//	anim := progress.NewAnimator(a)
//	anim.Start(ctx)
//	task.Advance(10)
//	err := anim.Wait()
package progress

import (
	"slices"
	"sync"
	"time"

	"github.com/raphi011/inkwell/internal/ui/animation"
	"github.com/raphi011/inkwell/internal/ui/render"
)

// DefaultSpeedWindow is how far back speed estimates look.
const DefaultSpeedWindow = 30 * time.Second

type cacheKey struct {
	task TaskID
	cell int
}

type cachedCell struct {
	r          render.Renderable
	drawnAt    time.Time
	generation uint64
}

type animationConfig struct {
	clock  Clock
	window time.Duration
}

// AnimationOption configures an [Animation].
type AnimationOption func(*animationConfig)

// WithClock sets the time source. Tests use it to control elapsed time.
func WithClock(c Clock) AnimationOption {
	return func(cfg *animationConfig) {
		cfg.clock = c
	}
}

// WithSpeedWindow sets how far back speed estimates look.
func WithSpeedWindow(d time.Duration) AnimationOption {
	return func(cfg *animationConfig) {
		if d > 0 {
			cfg.window = d
		}
	}
}

type taskOptions struct {
	total     *int64
	completed int64
	start     bool
	visible   bool
}

// TaskOption configures a task added with [Animation.AddTask].
type TaskOption func(*taskOptions)

// WithTotal sets the task's total. Without it the total is unknown.
func WithTotal(n int64) TaskOption {
	return func(o *taskOptions) {
		o.total = &n
	}
}

// WithCompleted sets the initial completed count.
func WithCompleted(n int64) TaskOption {
	return func(o *taskOptions) {
		o.completed = n
	}
}

// WithStart controls whether the task starts immediately. Default true.
func WithStart(start bool) TaskOption {
	return func(o *taskOptions) {
		o.start = start
	}
}

// WithVisible controls whether the task is drawn. Default true.
func WithVisible(visible bool) TaskOption {
	return func(o *taskOptions) {
		o.visible = visible
	}
}

// Animation draws a collection of tasks. It is safe for concurrent use.
type Animation[T any] struct {
	mu     sync.Mutex
	clock  Clock
	window time.Duration
	nextID TaskID
	tasks  []*Task[T]
	cache  map[cacheKey]cachedCell
	anim   *animation.Animation[render.Renderable]
}

// NewAnimation returns an empty animation drawing to t.
func NewAnimation[T any](t *render.Terminal, opts ...AnimationOption) *Animation[T] {
	cfg := animationConfig{clock: SystemClock{}, window: DefaultSpeedWindow}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Animation[T]{
		clock:  cfg.clock,
		window: cfg.window,
		cache:  make(map[cacheKey]cachedCell),
		anim: animation.New(t, func(r render.Renderable) render.Renderable {
			return r
		}),
	}
}

// AddTask adds a task drawn with def and returns it.
func (a *Animation[T]) AddTask(def *Definition[T], ctx T, opts ...TaskOption) *Task[T] {
	o := taskOptions{start: true, visible: true}
	for _, opt := range opts {
		opt(&o)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	t := newTask(a.nextID, def, ctx, a.clock, a.window, o)
	a.tasks = append(a.tasks, t)
	return t
}

// RemoveTask removes task from the animation. It returns false if the task
// is not part of it.
func (a *Animation[T]) RemoveTask(task *Task[T]) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := slices.Index(a.tasks, task)
	if i < 0 {
		return false
	}
	a.tasks = slices.Delete(a.tasks, i, i+1)
	for k := range a.cache {
		if k.task == task.id {
			delete(a.cache, k)
		}
	}
	return true
}

// Tasks returns the tasks in the order they were added.
func (a *Animation[T]) Tasks() []*Task[T] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.tasks)
}

// Finished reports whether every task is finished. An animation without
// tasks is not finished, so a ticking animator keeps running until work is
// added and completed.
func (a *Animation[T]) Finished() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.tasks) == 0 {
		return false
	}
	for _, t := range a.tasks {
		if !t.Finished() {
			return false
		}
	}
	return true
}

// Widget returns the current rendering of all visible tasks. Unless
// refreshAll is set, cells whose refresh interval has not passed reuse
// their previous rendering.
func (a *Animation[T]) Widget(refreshAll bool) render.Renderable {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	var (
		groups []render.Renderable
		def    *Definition[T]
		rows   [][]render.Renderable
	)
	flush := func() {
		if len(rows) > 0 {
			groups = append(groups, def.grid(rows))
		}
		rows = nil
	}

	for _, t := range a.tasks {
		st := t.State()
		if !st.Visible {
			continue
		}
		if t.def != def || !t.def.AlignColumns {
			flush()
			def = t.def
		}
		row := make([]render.Renderable, len(def.Cells))
		for i, c := range def.Cells {
			row[i] = a.cell(cacheKey{task: t.id, cell: i}, c, st, now, refreshAll)
		}
		rows = append(rows, row)
	}
	flush()

	return render.VStack(groups...)
}

// cell returns the cached rendering of a cell if it is still fresh, or
// draws it again. Callers hold a.mu.
func (a *Animation[T]) cell(key cacheKey, c Cell[T], st State[T], now time.Time, refreshAll bool) render.Renderable {
	if prev, ok := a.cache[key]; ok && !refreshAll && prev.generation == st.generation {
		if c.FPS <= 0 || now.Sub(prev.drawnAt) < time.Second/time.Duration(c.FPS) {
			return prev.r
		}
	}
	r := c.Content(st)
	a.cache[key] = cachedCell{r: r, drawnAt: now, generation: st.generation}
	return r
}

// Refresh redraws the tasks in place.
func (a *Animation[T]) Refresh(refreshAll bool) error {
	return a.anim.Update(a.Widget(refreshAll))
}

// Clear erases the drawn tasks.
func (a *Animation[T]) Clear() error {
	return a.anim.Clear()
}

// Stop leaves the last drawing on screen and moves the cursor below it.
func (a *Animation[T]) Stop() error {
	return a.anim.Stop()
}
