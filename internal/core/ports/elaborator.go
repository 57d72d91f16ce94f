package ports

import (
	"context"

	"go.trai.ch/elab/internal/core/domain"
)

// Elaborator is the computation library turning notebook content into models.
//
//go:generate mockgen -source=elaborator.go -destination=mocks/mock_elaborator.go -package=mocks
type Elaborator interface {
	// Elaborate builds a model from the formal cells of a notebook.
	// deps holds the models of instantiated documents, keyed by the model
	// reference as written in the instantiation cell.
	// Any returned error means the notebook is ill-formed.
	Elaborate(
		ctx context.Context,
		cells []domain.Cell,
		deps map[string]domain.Model,
		theory *domain.Theory,
	) (domain.Model, error)
}
