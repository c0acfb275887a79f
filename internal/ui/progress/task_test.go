package progress

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTask(clock Clock, opts ...TaskOption) *Task[string] {
	o := taskOptions{start: true, visible: true}
	for _, opt := range opts {
		opt(&o)
	}
	return newTask(1, NewDefinition[string](), "task", clock, DefaultSpeedWindow, o)
}

func ptr(n int64) *int64 { return &n }

func TestTask_FinishedIsSticky(t *testing.T) {
	t.Parallel()

	task := newTestTask(newFakeClock(), WithTotal(10))

	task.Update(func(s *UpdateScope[string]) { s.Completed = 10 })
	if !task.Finished() {
		t.Fatal("Finished() = false after completed reached total, want true")
	}

	task.Update(func(s *UpdateScope[string]) { s.Completed = 5 })
	if !task.Finished() {
		t.Error("Finished() = false after lowering completed, want true (sticky)")
	}
	if got := task.Completed(); got != 5 {
		t.Errorf("Completed() = %d, want 5", got)
	}

	task.Reset(true, nil)
	if task.Finished() {
		t.Error("Finished() = true after Reset(), want false")
	}
	if got := task.Completed(); got != 0 {
		t.Errorf("Completed() after Reset() = %d, want 0", got)
	}
	if !task.Started() {
		t.Error("Started() after Reset(true) = false, want true")
	}
}

func TestTask_ResetAppliesUpdate(t *testing.T) {
	t.Parallel()

	task := newTestTask(newFakeClock(), WithTotal(10), WithCompleted(10))
	if !task.Finished() {
		t.Fatal("task created complete should be finished")
	}

	task.Reset(false, func(s *UpdateScope[string]) {
		s.Total = ptr(3)
		s.Completed = 3
		s.Context = "again"
	})
	if !task.Finished() {
		t.Error("Finished() = false, want true when the reset update completes the task")
	}
	if got := task.Context(); got != "again" {
		t.Errorf("Context() = %q, want %q", got, "again")
	}
	if task.Started() {
		t.Error("Started() after Reset(false) = true, want false")
	}
}

func TestTask_AdvanceMatchesSetCompleted(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	advanced := newTestTask(clock, WithTotal(5), WithCompleted(2))
	set := newTestTask(clock, WithTotal(5), WithCompleted(2))

	advanced.Advance(3)
	set.SetCompleted(5)

	if got := advanced.Completed(); got != 5 {
		t.Errorf("Advance(3) from 2: Completed() = %d, want 5", got)
	}
	if advanced.Completed() != set.Completed() || advanced.Finished() != set.Finished() {
		t.Errorf("Advance(3) = (%d, %v), SetCompleted(5) = (%d, %v)",
			advanced.Completed(), advanced.Finished(), set.Completed(), set.Finished())
	}
	if !advanced.Finished() {
		t.Error("Finished() = false, want true")
	}
}

func TestTask_UnknownTotalNeverFinishes(t *testing.T) {
	t.Parallel()

	task := newTestTask(newFakeClock())
	task.Advance(1000)
	if task.Finished() {
		t.Error("Finished() = true with unknown total, want false")
	}
	if _, ok := task.Total(); ok {
		t.Error("Total() reported a known total")
	}
}

func TestTask_TotalIsCopied(t *testing.T) {
	t.Parallel()

	task := newTestTask(newFakeClock())
	total := int64(10)
	task.Update(func(s *UpdateScope[string]) { s.Total = &total })
	total = 1

	if got, _ := task.Total(); got != 10 {
		t.Errorf("Total() = %d after caller changed its variable, want 10", got)
	}
}

func TestTask_Status(t *testing.T) {
	t.Parallel()

	task := newTestTask(newFakeClock(), WithTotal(2), WithStart(false))

	steps := []struct {
		name   string
		update func(s *UpdateScope[string])
		want   Status
	}{
		{"created", func(*UpdateScope[string]) {}, NotStarted},
		{"started", func(s *UpdateScope[string]) { s.Started = true }, Running},
		{"paused", func(s *UpdateScope[string]) { s.Paused = true }, Paused},
		{"resumed", func(s *UpdateScope[string]) { s.Paused = false }, Running},
		{"completed", func(s *UpdateScope[string]) { s.Completed = 2 }, Finished},
	}

	for _, step := range steps {
		task.Update(step.update)
		if got := task.State().Status; got != step.want {
			t.Errorf("%s: Status = %v, want %v", step.name, got, step.want)
		}
	}
}

func TestTask_Elapsed(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	task := newTestTask(clock, WithTotal(10))

	clock.Advance(5 * time.Second)
	if got := task.State().Elapsed; got != 5*time.Second {
		t.Errorf("Elapsed = %v, want 5s", got)
	}

	task.Update(func(s *UpdateScope[string]) { s.Paused = true })
	clock.Advance(3 * time.Second)
	if got := task.State().Elapsed; got != 5*time.Second {
		t.Errorf("Elapsed while paused = %v, want 5s", got)
	}

	task.Update(func(s *UpdateScope[string]) { s.Paused = false })
	clock.Advance(2 * time.Second)
	if got := task.State().Elapsed; got != 7*time.Second {
		t.Errorf("Elapsed after resume = %v, want 7s", got)
	}

	task.SetCompleted(10)
	clock.Advance(time.Minute)
	if got := task.State().Elapsed; got != 7*time.Second {
		t.Errorf("Elapsed after finish = %v, want 7s", got)
	}

	task.Reset(true, nil)
	if got := task.State().Elapsed; got != 0 {
		t.Errorf("Elapsed after Reset() = %v, want 0", got)
	}
}

func TestTask_SpeedAndRemaining(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	task := newTestTask(clock, WithTotal(100))

	if st := task.State(); st.Speed != nil {
		t.Errorf("Speed = %v before any progress, want nil", *st.Speed)
	}

	clock.Advance(time.Second)
	task.SetCompleted(10)
	clock.Advance(time.Second)
	task.SetCompleted(20)

	st := task.State()
	if st.Speed == nil {
		t.Fatal("Speed = nil, want 10/s")
	}
	if *st.Speed != 10 {
		t.Errorf("Speed = %v, want 10", *st.Speed)
	}
	got, ok := st.Remaining()
	if !ok || got != 8*time.Second {
		t.Errorf("Remaining() = %v, %v, want 8s, true", got, ok)
	}
}

func TestTask_SpeedWindow(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	o := taskOptions{start: true, visible: true, total: ptr(1000)}
	task := newTask(1, NewDefinition[string](), "", clock, 10*time.Second, o)

	// Slow start, fast finish: only the recent samples count.
	for range 5 {
		clock.Advance(10 * time.Second)
		task.Advance(1)
	}
	for range 5 {
		clock.Advance(time.Second)
		task.Advance(100)
	}

	st := task.State()
	if st.Speed == nil || *st.Speed < 50 {
		t.Errorf("Speed = %v, want the recent rate of about 100/s", st.Speed)
	}
}

func TestState_Fraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		completed int64
		total     *int64
		want      float64
		wantOK    bool
	}{
		{"unknown total", 5, nil, 0, false},
		{"half", 5, ptr(10), 0.5, true},
		{"over total", 15, ptr(10), 1, true},
		{"zero total", 0, ptr(0), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := State[string]{Completed: tt.completed, Total: tt.total}
			got, ok := st.Fraction()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Fraction() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTask_ConcurrentAdvance(t *testing.T) {
	t.Parallel()

	task := newTestTask(SystemClock{}, WithTotal(1000))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				task.Advance(1)
			}
		}()
	}
	wg.Wait()

	if got := task.Completed(); got != 1000 {
		t.Errorf("Completed() = %d, want 1000", got)
	}
	if !task.Finished() {
		t.Error("Finished() = false, want true")
	}
}
