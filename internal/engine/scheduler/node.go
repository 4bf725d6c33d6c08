package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relay/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relay/internal/core/ports"
	"go.trai.ch/relay/internal/engine/jobrun"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			jobrun.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			jobs, err := graft.Dep[ports.JobRunner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(jobs, log, tel), nil
		},
	})
}
