package ports

import (
	"context"

	"go.trai.ch/relay/internal/core/domain"
)

// JobRunner defines the interface for executing a single workflow job,
// including its matrix fan-out.
//
//go:generate go run go.uber.org/mock/mockgen -source=job_runner.go -destination=mocks/mock_job_runner.go -package=mocks
type JobRunner interface {
	// RunJob executes every axis of the job and returns the aggregated result.
	// The result is returned even when the job failed; the error carries the
	// first axis failure for propagation.
	RunJob(ctx context.Context, job domain.Job) (domain.JobResult, error)
}
