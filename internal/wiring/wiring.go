// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/elab/internal/adapters/config"
	_ "go.trai.ch/elab/internal/adapters/elaborator"
	_ "go.trai.ch/elab/internal/adapters/logger"
	_ "go.trai.ch/elab/internal/adapters/telemetry"
	_ "go.trai.ch/elab/internal/adapters/theory"
	// Register app nodes.
	_ "go.trai.ch/elab/internal/app"
)
