package domain

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// JobGraph is the dependency graph of one workflow: its job entries,
// the requires edges between them, and the referenced job definitions.
type JobGraph struct {
	entries        map[string]WorkflowJob
	jobs           map[string]Job
	executionOrder []string
}

// BuildJobGraph constructs the graph for a workflow against the pipeline's
// job definitions. It rejects duplicate entries and references to jobs
// that are not defined.
func BuildJobGraph(wf Workflow, jobs map[string]Job) (*JobGraph, error) {
	g := &JobGraph{
		entries: make(map[string]WorkflowJob, len(wf.Jobs)),
		jobs:    make(map[string]Job, len(wf.Jobs)),
	}

	for _, entry := range wf.Jobs {
		if _, exists := g.entries[entry.Name]; exists {
			return nil, zerr.With(ErrDuplicateJob, "job", entry.Name)
		}
		job, defined := jobs[entry.Name]
		if !defined {
			return nil, zerr.With(ErrUnknownJob, "job", entry.Name)
		}
		job.Name = entry.Name
		g.entries[entry.Name] = entry
		g.jobs[entry.Name] = job
	}

	return g, nil
}

// Validate checks requires edges for missing targets and cycles using a
// depth-first topological sort, then verifies the workspace contract.
// It populates the execution order on success.
func (g *JobGraph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.entries))
	visited := make(map[string]int, len(g.entries)) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		entry, exists := g.entries[name]
		if !exists {
			return zerr.With(ErrMissingRequirement, "requirement", name)
		}

		for _, req := range entry.Requires {
			if visited[req] == 1 {
				return g.cycleError(path, req)
			}
			if visited[req] == 0 {
				if err := visit(req); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, name)
		return nil
	}

	// Sorted iteration keeps the execution order deterministic across runs.
	for _, name := range slices.Sorted(maps.Keys(g.entries)) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return g.validateWorkspaceContract()
}

// cycleError constructs an error carrying the cycle path as metadata.
func (g *JobGraph) cycleError(path []string, req string) error {
	start := slices.Index(path, req)
	cycle := ""
	for i := start; i >= 0 && i < len(path); i++ {
		cycle += path[i] + " -> "
	}
	cycle += req
	return zerr.With(ErrCycleDetected, "cycle", cycle)
}

// validateWorkspaceContract ensures every job that attaches the workspace
// has at least one transitive requirement that persists into it.
func (g *JobGraph) validateWorkspaceContract() error {
	for name, job := range g.jobs {
		if !jobHasStep(job, StepAttachWorkspace) {
			continue
		}
		if !g.anyAncestor(name, func(ancestor Job) bool {
			return jobHasStep(ancestor, StepPersistWorkspace)
		}) {
			return zerr.With(ErrWorkspaceNotPersisted, "job", name)
		}
	}
	return nil
}

func jobHasStep(job Job, t StepType) bool {
	for _, s := range job.Steps {
		if s.Type == t {
			return true
		}
	}
	return false
}

// anyAncestor reports whether any transitive requirement of the named job
// satisfies the predicate.
func (g *JobGraph) anyAncestor(name string, pred func(Job) bool) bool {
	seen := make(map[string]bool)
	stack := slices.Clone(g.entries[name].Requires)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if pred(g.jobs[cur]) {
			return true
		}
		stack = append(stack, g.entries[cur].Requires...)
	}
	return false
}

// Walk returns an iterator over workflow job entries in execution order.
// Validate must have succeeded first.
func (g *JobGraph) Walk() iter.Seq[WorkflowJob] {
	return func(yield func(WorkflowJob) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.entries[name]) {
				return
			}
		}
	}
}

// Dependents returns the names of jobs that directly require the given job.
func (g *JobGraph) Dependents(name string) []string {
	var deps []string
	for _, entry := range g.entries {
		if slices.Contains(entry.Requires, name) {
			deps = append(deps, entry.Name)
		}
	}
	slices.Sort(deps)
	return deps
}

// Job returns the definition for the named workflow job.
func (g *JobGraph) Job(name string) (Job, bool) {
	job, ok := g.jobs[name]
	return job, ok
}

// Entry returns the workflow entry for the named job.
func (g *JobGraph) Entry(name string) (WorkflowJob, bool) {
	entry, ok := g.entries[name]
	return entry, ok
}

// JobCount returns the number of jobs in the graph.
func (g *JobGraph) JobCount() int {
	return len(g.entries)
}
