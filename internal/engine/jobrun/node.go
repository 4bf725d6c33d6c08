package jobrun

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relay/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/adapters/workspace" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/core/ports"
)

// NodeID is the unique identifier for the job runner Graft node.
const NodeID graft.ID = "engine.job_runner"

func init() {
	graft.Register(graft.Node[ports.JobRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			workspace.NodeID,
			cache.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.JobRunner, error) {
			commands, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			cacheStore, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(commands, artifacts, cacheStore, tel, log), nil
		},
	})
}
