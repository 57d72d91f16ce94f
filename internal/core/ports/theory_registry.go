package ports

import (
	"context"

	"go.trai.ch/elab/internal/core/domain"
)

// TheoryRegistry resolves theory identifiers to theory handles.
//
//go:generate mockgen -source=theory_registry.go -destination=mocks/mock_theory_registry.go -package=mocks
type TheoryRegistry interface {
	// Get returns the theory with the given id.
	// It fails with domain.ErrUnknownTheory for unknown ids.
	Get(ctx context.Context, id string) (*domain.Theory, error)
	// List returns all registered theories ordered by id.
	List() []*domain.Theory
}
