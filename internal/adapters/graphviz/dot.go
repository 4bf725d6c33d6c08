// Package graphviz renders workflow job graphs in Graphviz DOT format.
package graphviz

import (
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/zerr"
)

// Renderer implements ports.GraphRenderer using dominikbraun/graph.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderDOT writes the workflow's job graph as DOT. Branch-filtered jobs
// carry their filter as a vertex label so the gating is visible in the
// rendered output.
func (r *Renderer) RenderDOT(name string, g *domain.JobGraph, w io.Writer) error {
	dg := graph.New(graph.StringHash, graph.Directed())

	for entry := range g.Walk() {
		opts := []func(*graph.VertexProperties){}
		if !entry.Branches.IsZero() {
			opts = append(opts, graph.VertexAttribute("shape", "diamond"))
		}
		if err := dg.AddVertex(entry.Name, opts...); err != nil {
			return zerr.With(zerr.Wrap(err, "unable to add vertex"), "job", entry.Name)
		}
	}

	for entry := range g.Walk() {
		for _, req := range entry.Requires {
			if err := dg.AddEdge(req, entry.Name); err != nil {
				return zerr.With(zerr.With(zerr.Wrap(err, "unable to add edge"),
					"from", req), "to", entry.Name)
			}
		}
	}

	if err := draw.DOT(dg, w, draw.GraphAttribute("label", name)); err != nil {
		return zerr.Wrap(err, "unable to render dot")
	}
	return nil
}
