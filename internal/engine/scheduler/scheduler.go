// Package scheduler executes the jobs of one workflow in dependency order.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/relay/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler runs workflow jobs with bounded parallelism. Jobs are gated at
// schedule time: a job runs only when its branch filter matches and every
// requirement succeeded, otherwise it is skipped and the skip propagates to
// its dependents.
type Scheduler struct {
	jobs      ports.JobRunner
	logger    ports.Logger
	telemetry ports.Telemetry

	mu       sync.RWMutex
	statuses map[string]domain.Status
}

// NewScheduler creates a new Scheduler.
func NewScheduler(jobs ports.JobRunner, logger ports.Logger, telemetry ports.Telemetry) *Scheduler {
	return &Scheduler{
		jobs:      jobs,
		logger:    logger,
		telemetry: telemetry,
	}
}

func (s *Scheduler) setStatus(name string, status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[name] = status
}

func (s *Scheduler) status(name string) domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statuses[name]
}

// Run executes the graph for the given branch and returns the run result.
// The graph must have been validated. The result always covers every job,
// including skipped ones, even when the run fails.
func (s *Scheduler) Run(ctx context.Context, workflow string, graph *domain.JobGraph, branch string, parallelism int) (domain.RunResult, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	s.mu.Lock()
	s.statuses = make(map[string]domain.Status, graph.JobCount())
	for entry := range graph.Walk() {
		s.statuses[entry.Name] = domain.StatusPending
	}
	s.mu.Unlock()

	run := domain.RunResult{
		Workflow:  workflow,
		Branch:    branch,
		Status:    domain.StatusSucceeded,
		StartedAt: time.Now(),
	}

	state := s.newRunState(ctx, graph, branch, parallelism)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	// Order the results along the execution order for stable output.
	for entry := range graph.Walk() {
		if res, ok := state.results[entry.Name]; ok {
			run.Jobs = append(run.Jobs, res)
		}
	}
	run.FinishedAt = time.Now()
	if state.errs != nil {
		run.Status = domain.StatusFailed
	}

	return run, state.errs
}

type result struct {
	job string
	res domain.JobResult
	err error
}

type runState struct {
	s           *Scheduler
	graph       *domain.JobGraph
	branch      string
	inDegree    map[string]int
	ready       []string
	active      int
	resultsCh   chan result
	results     map[string]domain.JobResult
	errs        error
	ctx         context.Context
	parallelism int
}

func (s *Scheduler) newRunState(ctx context.Context, graph *domain.JobGraph, branch string, parallelism int) *runState {
	inDegree := make(map[string]int, graph.JobCount())
	var ready []string
	for entry := range graph.Walk() {
		inDegree[entry.Name] = len(entry.Requires)
		if len(entry.Requires) == 0 {
			ready = append(ready, entry.Name)
		}
	}

	return &runState{
		s:           s,
		graph:       graph,
		branch:      branch,
		inDegree:    inDegree,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		results:     make(map[string]domain.JobResult, graph.JobCount()),
		ctx:         ctx,
		parallelism: parallelism,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

// schedule drains the ready queue. Gated jobs are skipped inline without
// occupying a worker slot, so a skip cascades through the queue in one pass.
func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]

		if reason, gated := state.gate(name); gated {
			state.skip(name, reason)
			continue
		}

		job, _ := state.graph.Job(name)
		state.active++
		state.s.setStatus(name, domain.StatusRunning)

		go func(job domain.Job) {
			res, err := state.s.jobs.RunJob(state.ctx, job)
			state.resultsCh <- result{job: job.Name, res: res, err: err}
		}(job)
	}
}

// gate decides whether the named job must be skipped instead of run.
func (state *runState) gate(name string) (string, bool) {
	entry, _ := state.graph.Entry(name)

	if !entry.Branches.Match(state.branch) {
		return fmt.Sprintf("branch %q does not match filter", state.branch), true
	}
	for _, req := range entry.Requires {
		if status := state.s.status(req); status != domain.StatusSucceeded {
			return fmt.Sprintf("requirement %s did not succeed (%s)", req, status), true
		}
	}
	return "", false
}

// skip marks the job skipped, emits a skipped telemetry vertex and releases
// its dependents so the skip can propagate.
func (state *runState) skip(name, reason string) {
	state.s.setStatus(name, domain.StatusSkipped)
	state.results[name] = domain.JobResult{Job: name, Status: domain.StatusSkipped}

	_, vertex := state.s.telemetry.Record(state.ctx, name)
	vertex.Skipped()

	state.s.logger.Info(fmt.Sprintf("job %s: skipped, %s", name, reason))
	state.release(name)
}

func (state *runState) handleResult(res result) {
	state.active--
	state.results[res.job] = res.res

	if res.err != nil {
		state.errs = errors.Join(state.errs, zerr.With(res.err, "workflow_job", res.job))
		state.s.setStatus(res.job, domain.StatusFailed)
	} else {
		state.s.setStatus(res.job, domain.StatusSucceeded)
	}

	// Dependents are released either way. A dependent of a failed job is
	// gated into Skipped once it reaches the head of the queue.
	state.release(res.job)
}

func (state *runState) release(name string) {
	for _, dep := range state.graph.Dependents(name) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
