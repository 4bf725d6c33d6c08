// Package app implements the application layer for relay.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/relay/internal/core/ports"
	"go.trai.ch/relay/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App ties the pipeline loader, the workflow scheduler and the run store
// together behind the operations the CLI exposes.
type App struct {
	loader    ports.ConfigLoader
	scheduler *scheduler.Scheduler
	store     ports.RunStore
	renderer  ports.GraphRenderer
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	store ports.RunStore,
	renderer ports.GraphRenderer,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		scheduler: sched,
		store:     store,
		renderer:  renderer,
		logger:    logger,
	}
}

// loadGraph loads the pipeline file and builds the validated job graph for
// the named workflow.
func (a *App) loadGraph(configPath, workflow string) (*domain.JobGraph, error) {
	pipeline, err := a.loader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load pipeline")
	}

	wf, ok := pipeline.Workflow(workflow)
	if !ok {
		return nil, zerr.With(domain.ErrUnknownWorkflow, "workflow", workflow)
	}

	graph, err := domain.BuildJobGraph(wf, pipeline.Jobs)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

// Run executes the named workflow for the given branch and records the run
// result. The result is stored even when the run fails.
func (a *App) Run(ctx context.Context, configPath, workflow, branch string, parallelism int) (domain.RunResult, error) {
	graph, err := a.loadGraph(configPath, workflow)
	if err != nil {
		return domain.RunResult{}, err
	}

	a.logger.Info(fmt.Sprintf("running workflow %s on branch %s (%d jobs)", workflow, branch, graph.JobCount()))

	run, runErr := a.scheduler.Run(ctx, workflow, graph, branch, parallelism)

	if err := a.store.Put(run); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to record run result: %v", err))
	}

	if runErr != nil {
		return run, zerr.With(errors.Join(domain.ErrRunFailed, runErr), "workflow", workflow)
	}
	return run, nil
}

// PlanEntry describes one job of a workflow plan in execution order.
type PlanEntry struct {
	Name     string
	Requires []string
	Axes     int
	Gated    bool
}

// Plan returns the execution order of the named workflow for the given
// branch without running anything. Gated marks jobs whose branch filter
// does not match the branch.
func (a *App) Plan(configPath, workflow, branch string) ([]PlanEntry, error) {
	graph, err := a.loadGraph(configPath, workflow)
	if err != nil {
		return nil, err
	}

	var plan []PlanEntry
	for entry := range graph.Walk() {
		job, _ := graph.Job(entry.Name)
		plan = append(plan, PlanEntry{
			Name:     entry.Name,
			Requires: entry.Requires,
			Axes:     len(domain.ExpandMatrix(job)),
			Gated:    !entry.Branches.Match(branch),
		})
	}
	return plan, nil
}

// Graph renders the named workflow's job graph as DOT to w.
func (a *App) Graph(configPath, workflow string, w io.Writer) error {
	graph, err := a.loadGraph(configPath, workflow)
	if err != nil {
		return err
	}
	return a.renderer.RenderDOT(workflow, graph, w)
}

// LastRun returns the recorded result of the most recent run of the named
// workflow, or nil when it has never run.
func (a *App) LastRun(workflow string) (*domain.RunResult, error) {
	return a.store.Get(workflow)
}
