package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/relay/internal/core/domain"
)

func TestBranchFilter_Match(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.BranchFilter
		branch string
		want   bool
	}{
		{"empty filter matches anything", domain.BranchFilter{}, "main", true},
		{"only matches listed branch", domain.BranchFilter{Only: []string{"develop"}}, "develop", true},
		{"only rejects other branches", domain.BranchFilter{Only: []string{"develop"}}, "main", false},
		{"ignore rejects listed branch", domain.BranchFilter{Ignore: []string{"main"}}, "main", false},
		{"ignore passes other branches", domain.BranchFilter{Ignore: []string{"main"}}, "develop", true},
		{"ignore wins over only", domain.BranchFilter{Only: []string{"develop"}, Ignore: []string{"develop"}}, "develop", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.branch))
		})
	}
}

func TestAxis_Label(t *testing.T) {
	assert.Equal(t, "default", domain.Axis(nil).Label())

	a := domain.Axis{"PYTHON_VERSION": "3.8", "PYTHON_ARCH": "64"}
	// Keys are sorted, so the label is stable regardless of map order.
	assert.Equal(t, "PYTHON_ARCH=64,PYTHON_VERSION=3.8", a.Label())
}

func TestExpandMatrix(t *testing.T) {
	plain := domain.Job{}
	axes := domain.ExpandMatrix(plain)
	assert.Len(t, axes, 1)
	assert.Nil(t, axes[0])

	matrixed := domain.Job{Matrix: []domain.Axis{
		{"PYTHON_VERSION": "3.7"},
		{"PYTHON_VERSION": "3.8"},
	}}
	axes = domain.ExpandMatrix(matrixed)
	assert.Len(t, axes, 2)
}

func TestStep_DisplayName(t *testing.T) {
	assert.Equal(t, "install deps", domain.Step{Type: domain.StepRun, Name: "install deps", Command: "pip install"}.DisplayName())
	assert.Equal(t, "pip install", domain.Step{Type: domain.StepRun, Command: "pip install"}.DisplayName())
	assert.Equal(t, "save_cache", domain.Step{Type: domain.StepSaveCache, Key: "deps"}.DisplayName())
}
