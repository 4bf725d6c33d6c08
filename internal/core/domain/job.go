package domain

// Job is a named, ordered sequence of steps run in an isolated directory
// with a fixed environment. The image is recorded metadata only; relay
// executes steps on the host.
type Job struct {
	Name        string
	Image       string
	WorkingDir  string
	Environment map[string]string
	Matrix      []Axis
	Steps       []Step
}

// StepType discriminates the step union.
type StepType string

const (
	// StepRun executes a shell command.
	StepRun StepType = "run"
	// StepCheckout records the source directory for the job.
	StepCheckout StepType = "checkout"
	// StepPersistWorkspace copies paths into the run-scoped workspace.
	StepPersistWorkspace StepType = "persist_to_workspace"
	// StepAttachWorkspace materializes the run-scoped workspace into the job directory.
	StepAttachWorkspace StepType = "attach_workspace"
	// StepStoreArtifacts copies a path into the run's artifact store.
	StepStoreArtifacts StepType = "store_artifacts"
	// StepRestoreCache restores a cached tree for the current axis. Advisory.
	StepRestoreCache StepType = "restore_cache"
	// StepSaveCache saves paths under a key in the axis-local cache.
	StepSaveCache StepType = "save_cache"
)

// Step is one entry of a job. Which fields are meaningful depends on Type.
type Step struct {
	Type StepType

	// run
	Name        string
	Command     string
	Environment map[string]string
	// FailOnOutput fails the step when its captured output contains this
	// literal substring, even if the command exited 0.
	FailOnOutput string

	// persist_to_workspace
	Root  string
	Paths []string

	// attach_workspace
	At string

	// store_artifacts
	Path        string
	Destination string

	// restore_cache / save_cache
	Key string
}

// DisplayName returns a human-readable name for the step.
func (s Step) DisplayName() string {
	if s.Type == StepRun {
		if s.Name != "" {
			return s.Name
		}
		return s.Command
	}
	return string(s.Type)
}
