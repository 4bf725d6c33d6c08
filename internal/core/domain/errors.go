package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownWorkflow is returned when a requested workflow is not defined.
	ErrUnknownWorkflow = zerr.New("unknown workflow")

	// ErrUnknownJob is returned when a workflow references a job that is not defined.
	ErrUnknownJob = zerr.New("unknown job")

	// ErrDuplicateJob is returned when a workflow lists the same job twice.
	ErrDuplicateJob = zerr.New("duplicate job in workflow")

	// ErrMissingRequirement is returned when a workflow job requires a job
	// that is not part of the workflow.
	ErrMissingRequirement = zerr.New("missing requirement")

	// ErrCycleDetected is returned when the requires edges form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrWorkspaceNotPersisted is returned when a job attaches the workspace
	// but no transitive requirement persists anything into it.
	ErrWorkspaceNotPersisted = zerr.New("attach_workspace without a persisting requirement")

	// ErrUnknownStepType is returned by the config loader for an unrecognized step.
	ErrUnknownStepType = zerr.New("unknown step type")

	// ErrOutputGate is returned when a step's captured output contains its
	// failure marker, regardless of the command's exit code.
	ErrOutputGate = zerr.New("output matched failure marker")

	// ErrRunFailed is returned when a workflow run finished with failed jobs.
	ErrRunFailed = zerr.New("workflow run failed")
)
