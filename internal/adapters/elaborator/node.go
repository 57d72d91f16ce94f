package elaborator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/elab/internal/core/ports"
)

// NodeID is the unique identifier for the elaborator Graft node.
const NodeID graft.ID = "adapter.elaborator"

func init() {
	graft.Register(graft.Node[ports.Elaborator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Elaborator, error) {
			return New(), nil
		},
	})
}
