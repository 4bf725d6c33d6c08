// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/relay/internal/adapters/cache"
	_ "go.trai.ch/relay/internal/adapters/config"
	_ "go.trai.ch/relay/internal/adapters/graphviz"
	_ "go.trai.ch/relay/internal/adapters/logger"
	_ "go.trai.ch/relay/internal/adapters/results"
	_ "go.trai.ch/relay/internal/adapters/shell"
	_ "go.trai.ch/relay/internal/adapters/telemetry"
	_ "go.trai.ch/relay/internal/adapters/workspace"
	// Register app and engine nodes.
	_ "go.trai.ch/relay/internal/app"
	_ "go.trai.ch/relay/internal/engine/jobrun"
	_ "go.trai.ch/relay/internal/engine/scheduler"
)
