// Package domain contains the core domain models for pipelines, workflows
// and jobs, together with the workflow dependency graph logic.
package domain

import "slices"

// Pipeline is the top-level configuration: a set of job definitions and
// the workflows that sequence them.
type Pipeline struct {
	Version   string
	Workflows map[string]Workflow
	Jobs      map[string]Job
}

// Workflow returns the named workflow.
func (p *Pipeline) Workflow(name string) (Workflow, bool) {
	wf, ok := p.Workflows[name]
	return wf, ok
}

// WorkflowNames returns the defined workflow names, sorted.
func (p *Pipeline) WorkflowNames() []string {
	names := make([]string, 0, len(p.Workflows))
	for name := range p.Workflows {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Workflow is an ordered list of job entries forming a dependency graph.
type Workflow struct {
	Jobs []WorkflowJob
}

// WorkflowJob is one entry of a workflow: the job it refers to, the jobs
// it requires, and an optional branch filter gating its execution.
type WorkflowJob struct {
	Name     string
	Requires []string
	Branches BranchFilter
}

// BranchFilter restricts a workflow job to a set of branches.
// An empty filter matches every branch. Ignore takes precedence over Only.
type BranchFilter struct {
	Only   []string
	Ignore []string
}

// Match reports whether the filter allows execution on the given branch.
func (f BranchFilter) Match(branch string) bool {
	if slices.Contains(f.Ignore, branch) {
		return false
	}
	if len(f.Only) == 0 {
		return true
	}
	return slices.Contains(f.Only, branch)
}

// IsZero reports whether the filter is unrestricted.
func (f BranchFilter) IsZero() bool {
	return len(f.Only) == 0 && len(f.Ignore) == 0
}
