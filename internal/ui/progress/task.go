package progress

import (
	"sync"
	"time"
)

// TaskID identifies a task within its [Animation].
type TaskID int64

// Clock is the time source for task timing and cell refresh throttling.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Status is the lifecycle state of a task.
type Status int

const (
	NotStarted Status = iota
	Running
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// UpdateScope is the mutable view of a task passed to [Task.Update].
type UpdateScope[T any] struct {
	Context   T
	Completed int64
	Total     *int64 // nil while the total is unknown
	Visible   bool
	Started   bool
	Paused    bool
}

type sample struct {
	at        time.Time
	completed int64
}

// Task is one unit of tracked progress. Tasks are created by
// [Animation.AddTask] and are safe for concurrent use.
type Task[T any] struct {
	mu     sync.Mutex
	id     TaskID
	def    *Definition[T]
	clock  Clock
	window time.Duration

	s        UpdateScope[T]
	finished bool

	created    time.Time
	startTime  time.Time
	pauseTime  time.Time
	finishTime time.Time
	samples    []sample
	generation uint64
}

func newTask[T any](id TaskID, def *Definition[T], ctx T, clock Clock, window time.Duration, o taskOptions) *Task[T] {
	t := &Task[T]{
		id:      id,
		def:     def,
		clock:   clock,
		window:  window,
		created: clock.Now(),
	}
	t.s.Context = ctx
	t.Update(func(s *UpdateScope[T]) {
		s.Completed = o.completed
		s.Total = o.total
		s.Visible = o.visible
		s.Started = o.start
	})
	return t
}

// Update applies fn to the task's state and re-evaluates whether the task is
// finished. A finished task stays finished until [Task.Reset], even if fn
// lowers the completed count.
func (t *Task[T]) Update(fn func(s *UpdateScope[T])) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.s
	fn(&t.s)
	t.apply(prev)
}

// Reset zeroes the completed count and the clock, clears the finished flag,
// and then applies fn like [Task.Update]. If start is true the task is
// started again.
func (t *Task[T]) Reset(start bool, fn func(s *UpdateScope[T])) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.s.Completed = 0
	t.s.Started = false
	t.s.Paused = false
	t.finished = false
	t.startTime = time.Time{}
	t.pauseTime = time.Time{}
	t.finishTime = time.Time{}
	t.samples = nil
	t.generation++

	prev := t.s
	t.s.Started = start
	if fn != nil {
		fn(&t.s)
	}
	t.apply(prev)
}

// Advance adds n to the completed count.
func (t *Task[T]) Advance(n int64) {
	t.Update(func(s *UpdateScope[T]) {
		s.Completed += n
	})
}

// SetCompleted sets the completed count.
func (t *Task[T]) SetCompleted(n int64) {
	t.Update(func(s *UpdateScope[T]) {
		s.Completed = n
	})
}

// apply records clock transitions and speed samples for the change from prev
// to the current state. Callers hold t.mu.
func (t *Task[T]) apply(prev UpdateScope[T]) {
	now := t.clock.Now()

	if t.s.Total != nil {
		total := *t.s.Total
		t.s.Total = &total
	}

	switch {
	case !prev.Started && t.s.Started:
		t.startTime = now
		if t.s.Paused {
			t.pauseTime = now
		}
	case prev.Started && !t.s.Started:
		t.startTime = time.Time{}
		t.pauseTime = time.Time{}
	}

	if t.s.Started && prev.Started {
		switch {
		case !prev.Paused && t.s.Paused:
			t.pauseTime = now
		case prev.Paused && !t.s.Paused:
			t.startTime = t.startTime.Add(now.Sub(t.pauseTime))
			t.pauseTime = time.Time{}
		}
	}

	if t.s.Completed != prev.Completed || len(t.samples) == 0 {
		t.addSample(now)
	}

	if !t.finished && t.s.Total != nil && t.s.Completed >= *t.s.Total {
		t.finished = true
		t.finishTime = now
	}
}

func (t *Task[T]) addSample(now time.Time) {
	if n := len(t.samples); n > 0 && t.s.Completed < t.samples[n-1].completed {
		t.samples = t.samples[:0]
	}
	t.samples = append(t.samples, sample{at: now, completed: t.s.Completed})

	cutoff := now.Add(-t.window)
	drop := 0
	for drop < len(t.samples)-2 && t.samples[drop].at.Before(cutoff) {
		drop++
	}
	t.samples = t.samples[drop:]
}

// ID returns the task's identifier.
func (t *Task[T]) ID() TaskID { return t.id }

// Finished reports whether the completed count has reached the total since
// the last reset.
func (t *Task[T]) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Context returns the task's context value.
func (t *Task[T]) Context() T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Context
}

// Completed returns the completed count.
func (t *Task[T]) Completed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Completed
}

// Total returns the total and whether it is known.
func (t *Task[T]) Total() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.s.Total == nil {
		return 0, false
	}
	return *t.s.Total, true
}

// Visible reports whether the task is drawn.
func (t *Task[T]) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Visible
}

// Started reports whether the task's clock is running or paused.
func (t *Task[T]) Started() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Started
}

// Paused reports whether the task is paused.
func (t *Task[T]) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Paused
}

// State returns a consistent snapshot of the task for drawing.
func (t *Task[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	st := State[T]{
		ID:            t.id,
		Context:       t.s.Context,
		Completed:     t.s.Completed,
		Visible:       t.s.Visible,
		AnimationTime: now.Sub(t.created),
		generation:    t.generation,
	}
	if t.s.Total != nil {
		total := *t.s.Total
		st.Total = &total
	}

	switch {
	case t.finished:
		st.Status = Finished
	case !t.s.Started:
		st.Status = NotStarted
	case t.s.Paused:
		st.Status = Paused
	default:
		st.Status = Running
	}

	if t.s.Started || t.finished {
		end := now
		switch {
		case t.finished && !t.finishTime.IsZero():
			end = t.finishTime
		case t.s.Paused && !t.pauseTime.IsZero():
			end = t.pauseTime
		}
		if !t.startTime.IsZero() && end.After(t.startTime) {
			st.Elapsed = end.Sub(t.startTime)
		}
	}

	if n := len(t.samples); n >= 2 {
		first, last := t.samples[0], t.samples[n-1]
		if d := last.at.Sub(first.at); d > 0 {
			speed := float64(last.completed-first.completed) / d.Seconds()
			st.Speed = &speed
		}
	}
	return st
}

// State is a point-in-time snapshot of a task.
type State[T any] struct {
	ID            TaskID
	Context       T
	Completed     int64
	Total         *int64
	Status        Status
	Visible       bool
	Elapsed       time.Duration // time spent running, excluding pauses
	Speed         *float64      // completed units per second; nil until measurable
	AnimationTime time.Duration // time since the task was added

	generation uint64
}

// Fraction returns completed/total clamped to [0, 1]. It returns false while
// the total is unknown.
func (s State[T]) Fraction() (float64, bool) {
	if s.Total == nil {
		return 0, false
	}
	if *s.Total <= 0 {
		return 1, true
	}
	f := float64(s.Completed) / float64(*s.Total)
	return min(max(f, 0), 1), true
}

// Remaining estimates the time until the task finishes from its current
// speed.
func (s State[T]) Remaining() (time.Duration, bool) {
	if s.Status == Finished {
		return 0, true
	}
	if s.Total == nil || s.Speed == nil || *s.Speed <= 0 {
		return 0, false
	}
	left := float64(*s.Total - s.Completed)
	if left <= 0 {
		return 0, true
	}
	return time.Duration(left / *s.Speed * float64(time.Second)), true
}
