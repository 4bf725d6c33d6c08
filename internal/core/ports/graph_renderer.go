package ports

import (
	"io"

	"go.trai.ch/relay/internal/core/domain"
)

// GraphRenderer renders a workflow job graph for external consumption.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph_renderer.go -destination=mocks/mock_graph_renderer.go -package=mocks
type GraphRenderer interface {
	// RenderDOT writes the graph in Graphviz DOT format.
	RenderDOT(name string, g *domain.JobGraph, w io.Writer) error
}
