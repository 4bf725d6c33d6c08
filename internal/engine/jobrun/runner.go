// Package jobrun executes a single workflow job: matrix fan-out, step
// sequencing, output capture and the artifact, workspace and cache steps.
package jobrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/relay/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.JobRunner = (*Runner)(nil)

// Runner implements ports.JobRunner.
type Runner struct {
	commands  ports.CommandRunner
	artifacts ports.ArtifactStore
	cache     ports.CacheStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(
	commands ports.CommandRunner,
	artifacts ports.ArtifactStore,
	cache ports.CacheStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Runner {
	return &Runner{
		commands:  commands,
		artifacts: artifacts,
		cache:     cache,
		telemetry: telemetry,
		logger:    logger,
	}
}

// RunJob executes every axis of the job concurrently and returns the
// aggregated result. Axes are independent: one axis failing does not stop
// its siblings, but any axis failure fails the job.
func (r *Runner) RunJob(ctx context.Context, job domain.Job) (domain.JobResult, error) {
	start := time.Now()
	axes := domain.ExpandMatrix(job)
	if len(job.Matrix) > 0 {
		r.logger.Info(fmt.Sprintf("job %s: fanning out into %d axes", job.Name, len(axes)))
	}

	axisResults := make([]domain.AxisResult, len(axes))
	axisArtifacts := make([][]domain.ArtifactRecord, len(axes))

	// A plain errgroup does not cancel the context on failure, which keeps
	// the axes independent.
	var eg errgroup.Group
	for i, axis := range axes {
		eg.Go(func() error {
			res, artifacts, err := r.runAxis(ctx, job, axis, i)
			axisResults[i] = res
			axisArtifacts[i] = artifacts
			return err
		})
	}
	axisErr := eg.Wait()

	result := domain.JobResult{
		Job:      job.Name,
		Status:   domain.StatusSucceeded,
		Duration: time.Since(start),
		Axes:     axisResults,
	}
	for i := range axes {
		result.Artifacts = append(result.Artifacts, axisArtifacts[i]...)
	}

	if axisErr != nil {
		result.Status = domain.StatusFailed
		err := zerr.With(zerr.Wrap(axisErr, "job failed"), "job", job.Name)
		r.logger.Error(err)
		return result, err
	}
	return result, nil
}

// runAxis executes one matrix axis: merge environment, run steps in order,
// stream output to the job log and the telemetry vertex, and stop at the
// first failing step.
func (r *Runner) runAxis(ctx context.Context, job domain.Job, axis domain.Axis, idx int) (domain.AxisResult, []domain.ArtifactRecord, error) {
	label := axis.Label()
	axisStart := time.Now()

	vertexName := job.Name
	if len(job.Matrix) > 0 {
		vertexName = fmt.Sprintf("%s (%s)", job.Name, label)
	}
	_, vertex := r.telemetry.Record(ctx, vertexName)

	logw, err := r.artifacts.LogWriter(job.Name, label)
	if err != nil {
		vertex.Complete(err)
		return domain.AxisResult{Label: label, Status: domain.StatusFailed}, nil, err
	}
	defer logw.Close() //nolint:errcheck // best effort close in defer

	out := io.MultiWriter(logw, vertex.Stdout())
	if job.Image != "" {
		_, _ = fmt.Fprintf(out, "image: %s\n", job.Image)
	}

	ax := axisRun{
		runner:    r,
		job:       job,
		env:       mergeEnvironment(job.Environment, axis),
		dir:       workingDir(job),
		namespace: fmt.Sprintf("%s/axis-%d", job.Name, idx),
		out:       out,
	}

	result := domain.AxisResult{Label: label}
	var failed error

	for _, step := range job.Steps {
		if failed != nil {
			result.Steps = append(result.Steps, domain.StepResult{
				Name:   step.DisplayName(),
				Status: domain.StatusSkipped,
			})
			continue
		}

		stepStart := time.Now()
		err := ax.runStep(ctx, step)
		stepResult := domain.StepResult{
			Name:     step.DisplayName(),
			Status:   domain.StatusSucceeded,
			Duration: time.Since(stepStart),
		}
		if err != nil {
			stepResult.Status = domain.StatusFailed
			stepResult.Error = err.Error()
			failed = zerr.With(err, "step", step.DisplayName())
		}
		result.Steps = append(result.Steps, stepResult)
	}

	result.Duration = time.Since(axisStart)
	vertex.Complete(failed)

	if failed != nil {
		result.Status = domain.StatusFailed
		return result, ax.artifacts, zerr.With(failed, "axis", label)
	}
	result.Status = domain.StatusSucceeded
	return result, ax.artifacts, nil
}

// axisRun carries the per-axis execution state across steps.
type axisRun struct {
	runner    *Runner
	job       domain.Job
	env       []string
	dir       string
	namespace string
	out       io.Writer
	artifacts []domain.ArtifactRecord
}

func (ax *axisRun) runStep(ctx context.Context, step domain.Step) error {
	switch step.Type {
	case domain.StepRun:
		return ax.runCommand(ctx, step)

	case domain.StepCheckout:
		_, _ = fmt.Fprintf(ax.out, "checkout: %s\n", ax.dir)
		return nil

	case domain.StepPersistWorkspace:
		return ax.runner.artifacts.PersistWorkspace(filepath.Join(ax.dir, step.Root), step.Paths)

	case domain.StepAttachWorkspace:
		return ax.runner.artifacts.AttachWorkspace(filepath.Join(ax.dir, step.At))

	case domain.StepStoreArtifacts:
		record, err := ax.runner.artifacts.StoreArtifact(ax.job.Name, filepath.Join(ax.dir, step.Path), step.Destination)
		if err != nil {
			return err
		}
		ax.artifacts = append(ax.artifacts, record)
		return nil

	case domain.StepRestoreCache:
		hit, err := ax.runner.cache.Restore(ax.namespace, step.Key, ax.dir)
		if err != nil {
			return err
		}
		if hit {
			_, _ = fmt.Fprintf(ax.out, "restore_cache: hit for %q\n", step.Key)
		} else {
			_, _ = fmt.Fprintf(ax.out, "restore_cache: miss for %q\n", step.Key)
		}
		return nil

	case domain.StepSaveCache:
		return ax.runner.cache.Save(ax.namespace, step.Key, ax.dir, step.Paths)
	}

	return zerr.With(domain.ErrUnknownStepType, "step", string(step.Type))
}

// runCommand executes a run step and applies the output gate: the step
// fails when its captured output contains the failure marker, even if the
// command exited 0.
func (ax *axisRun) runCommand(ctx context.Context, step domain.Step) error {
	out := ax.out
	var captured bytes.Buffer
	if step.FailOnOutput != "" {
		out = io.MultiWriter(ax.out, &captured)
	}

	env := ax.env
	if len(step.Environment) > 0 {
		env = applyOverrides(env, step.Environment)
	}

	err := ax.runner.commands.Run(ctx, ports.CommandSpec{
		Command: step.Command,
		Dir:     ax.dir,
		Env:     env,
		Output:  out,
	})
	if err != nil {
		return err
	}

	if step.FailOnOutput != "" && strings.Contains(captured.String(), step.FailOnOutput) {
		return zerr.With(domain.ErrOutputGate, "marker", step.FailOnOutput)
	}
	return nil
}

func workingDir(job domain.Job) string {
	if job.WorkingDir != "" {
		return job.WorkingDir
	}
	return "."
}
