package ports

import "go.trai.ch/elab/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the workspace file starting at cwd and resolves it.
	Load(cwd string) (*domain.Workspace, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	DiscoverRoot(cwd string) (string, error)
}
