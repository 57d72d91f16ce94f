package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/elab/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/elab/internal/adapters/elaborator" //nolint:depguard // Wired in app layer
	"go.trai.ch/elab/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/elab/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/elab/internal/adapters/theory"     //nolint:depguard // Wired in app layer
	"go.trai.ch/elab/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the command line needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			theory.NodeID,
			elaborator.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	theories, err := graft.Dep[*theory.Registry](ctx)
	if err != nil {
		return nil, err
	}
	elab, err := graft.Dep[ports.Elaborator](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	metrics, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, theories, elab, log, tracer, metrics), nil
}
