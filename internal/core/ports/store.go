package ports

import "go.trai.ch/relay/internal/core/domain"

// RunStore defines the interface for persisting workflow run results.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Get retrieves the last recorded result for a workflow.
	// Returns nil, nil if not found.
	Get(workflow string) (*domain.RunResult, error)

	// Put stores the run result, replacing any previous record for the workflow.
	Put(result domain.RunResult) error
}
