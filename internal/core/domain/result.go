package domain

import "time"

// Status is the lifecycle state of a job, axis or step.
type Status string

const (
	// StatusPending indicates the unit has not started yet.
	StatusPending Status = "Pending"
	// StatusRunning indicates the unit is executing.
	StatusRunning Status = "Running"
	// StatusSucceeded indicates the unit finished without error.
	StatusSucceeded Status = "Succeeded"
	// StatusFailed indicates the unit finished with an error.
	StatusFailed Status = "Failed"
	// StatusSkipped indicates the unit was gated away: its branch filter
	// did not match, or an upstream requirement did not succeed.
	StatusSkipped Status = "Skipped"
)

// StepResult records the outcome of one step within an axis.
type StepResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ArtifactRecord describes one stored artifact and its content checksum.
type ArtifactRecord struct {
	Job         string `json:"job"`
	Path        string `json:"path"`
	Destination string `json:"destination"`
	Checksum    string `json:"checksum"`
	Size        int64  `json:"size"`
}

// AxisResult records the outcome of one matrix axis of a job.
type AxisResult struct {
	Label    string        `json:"label"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration,omitempty"`
	Steps    []StepResult  `json:"steps,omitempty"`
}

// JobResult records the outcome of one workflow job across all its axes.
type JobResult struct {
	Job       string           `json:"job"`
	Status    Status           `json:"status"`
	Duration  time.Duration    `json:"duration,omitempty"`
	Axes      []AxisResult     `json:"axes,omitempty"`
	Artifacts []ArtifactRecord `json:"artifacts,omitempty"`
}

// Failed reports whether any axis of the job failed.
func (r JobResult) Failed() bool {
	return r.Status == StatusFailed
}

// RunResult records the outcome of one workflow run.
type RunResult struct {
	Workflow   string      `json:"workflow"`
	Branch     string      `json:"branch"`
	Status     Status      `json:"status"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Jobs       []JobResult `json:"jobs,omitempty"`
}

// FailedJobs returns the names of jobs that failed during the run.
func (r RunResult) FailedJobs() []string {
	var failed []string
	for _, j := range r.Jobs {
		if j.Failed() {
			failed = append(failed, j.Job)
		}
	}
	return failed
}
