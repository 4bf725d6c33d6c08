package results

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/relay/internal/adapters/workspace"
	"go.trai.ch/relay/internal/core/ports"
)

// NodeID is the unique identifier for the run store Graft node.
const NodeID graft.ID = "adapter.run_store"

func init() {
	graft.Register(graft.Node[ports.RunStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunStore, error) {
			return NewStore(filepath.Join(workspace.DefaultRoot, "runs.json"))
		},
	})
}
