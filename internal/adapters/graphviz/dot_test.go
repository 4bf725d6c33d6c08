package graphviz_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relay/internal/adapters/graphviz"
	"go.trai.ch/relay/internal/core/domain"
)

func TestRenderDOT(t *testing.T) {
	wf := domain.Workflow{Jobs: []domain.WorkflowJob{
		{Name: "python3"},
		{Name: "deploy", Requires: []string{"python3"}, Branches: domain.BranchFilter{Only: []string{"develop"}}},
	}}
	jobs := map[string]domain.Job{"python3": {}, "deploy": {}}

	g, err := domain.BuildJobGraph(wf, jobs)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	var buf bytes.Buffer
	require.NoError(t, graphviz.NewRenderer().RenderDOT("docs", g, &buf))

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "python3")
	assert.Contains(t, out, "deploy")
	// The requires edge must appear.
	assert.Contains(t, out, "->")
}
