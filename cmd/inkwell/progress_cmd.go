package main

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/inkwell/internal/config"
	"github.com/raphi011/inkwell/internal/log"
	"github.com/raphi011/inkwell/internal/output"
	"github.com/raphi011/inkwell/internal/ui/progress"
	"github.com/raphi011/inkwell/internal/ui/render"
)

// job is the context carried by each simulated task.
type job struct {
	name string
	step int64 // units completed per tick
}

func newProgressCmd() *cobra.Command {
	var (
		tasks         int
		total         int64
		tick          time.Duration
		indeterminate bool
	)

	cmd := &cobra.Command{
		Use:     "progress",
		Short:   "Animate simulated tasks with progress bars",
		GroupID: GroupWidgets,
		Args:    cobra.NoArgs,
		Long: `Run simulated tasks and draw their progress.

Each task advances on its own worker. The display refreshes at the
configured fps until every task is finished or the command is interrupted.`,
		Example: `  inkwell progress                   # Three tasks of 100 units
  inkwell progress --tasks 5 --total 2000
  inkwell progress --indeterminate   # Tasks without a known total`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tasks < 1 {
				return fmt.Errorf("invalid --tasks %d: must be at least 1", tasks)
			}
			if total < 1 {
				return fmt.Errorf("invalid --total %d: must be at least 1", total)
			}
			ctx := cmd.Context()
			t := output.FromContext(ctx).Terminal()
			return runProgress(ctx, t, config.FromContext(ctx), tasks, total, tick, indeterminate)
		},
	}

	cmd.Flags().IntVarP(&tasks, "tasks", "n", 3, "Number of tasks")
	cmd.Flags().Int64Var(&total, "total", 100, "Units of work per task")
	cmd.Flags().DurationVar(&tick, "tick", 50*time.Millisecond, "Time between task updates")
	cmd.Flags().BoolVar(&indeterminate, "indeterminate", false, "Hide the totals until a task finishes")

	return cmd
}

// progressDefinition lays out one row per job.
func progressDefinition() *progress.Definition[job] {
	return progress.NewDefinition(
		progress.SpinnerCell[job](spinner.Dot),
		progress.TextFunc(func(s progress.State[job]) string { return s.Context.name }),
		progress.BarCell[job](0),
		progress.PercentageCell[job](),
		progress.CompletedCell[job](""),
		progress.SpeedCell[job]("it/s"),
		progress.TimeRemainingCell[job](),
	)
}

func runProgress(ctx context.Context, t *render.Terminal, cfg *config.Config, n int, total int64, tick time.Duration, indeterminate bool) error {
	l := log.FromContext(ctx)

	opts := []progress.AnimationOption{}
	animOpts := []progress.AnimatorOption{}
	if cfg != nil {
		opts = append(opts, progress.WithSpeedWindow(cfg.SpeedWindow()))
		animOpts = append(animOpts,
			progress.WithFPS(cfg.Progress.FPS),
			progress.WithClearWhenFinished(cfg.Progress.ClearWhenFinished),
		)
	}

	anim := progress.NewAnimation[job](t, opts...)
	def := progressDefinition()

	var all []*progress.Task[job]
	for i := range n {
		j := job{name: fmt.Sprintf("task-%d", i+1), step: int64(i%3 + 1)}
		var taskOpts []progress.TaskOption
		if !indeterminate {
			taskOpts = append(taskOpts, progress.WithTotal(total))
		}
		all = append(all, anim.AddTask(def, j, taskOpts...))
	}

	animator := progress.NewAnimator(anim, animOpts...)
	animator.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range all {
		g.Go(func() error {
			return work(gctx, task, total, tick)
		})
	}

	workErr := g.Wait()
	animErr := animator.Wait()
	l.Debug("progress done", "tasks", fmt.Sprint(n))

	if workErr != nil {
		return workErr
	}
	return animErr
}

// work advances task until it reaches total, then sets the total so tasks
// without one finish too.
func work(ctx context.Context, task *progress.Task[job], total int64, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	step := task.Context().step
	for task.Completed() < total {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		task.Advance(min(step, total-task.Completed()))
	}

	task.Update(func(s *progress.UpdateScope[job]) {
		s.Total = &total
	})
	return nil
}
