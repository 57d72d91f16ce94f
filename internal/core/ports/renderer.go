package ports

import (
	"context"

	"go.trai.ch/elab/internal/core/domain"
)

// ModelUpdate describes a new cache entry for one model document.
type ModelUpdate struct {
	Key   domain.ModelKey
	Name  string
	Entry domain.ModelEntry
}

// Renderer is the abstraction for presenting model updates.
// It allows the same update stream to drive either a TUI or linear logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new updates.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnModelUpdate is called whenever a model entry is created or recomputed.
	OnModelUpdate(update ModelUpdate)

	// OnError is called for failures that have no caller to return to.
	OnError(key domain.ModelKey, err error)
}
