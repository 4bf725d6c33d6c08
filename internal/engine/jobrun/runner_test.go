package jobrun_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relay/internal/adapters/telemetry"
	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/relay/internal/core/ports"
	"go.trai.ch/relay/internal/core/ports/mocks"
	"go.trai.ch/relay/internal/engine/jobrun"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// nopWriteCloser is what the artifact store hands out for job logs.
type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }

type fixture struct {
	commands  *mocks.MockCommandRunner
	artifacts *mocks.MockArtifactStore
	cache     *mocks.MockCacheStore
	runner    *jobrun.Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		commands:  mocks.NewMockCommandRunner(ctrl),
		artifacts: mocks.NewMockArtifactStore(ctrl),
		cache:     mocks.NewMockCacheStore(ctrl),
	}
	f.artifacts.EXPECT().LogWriter(gomock.Any(), gomock.Any()).Return(nopWriteCloser{}, nil).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	f.runner = jobrun.NewRunner(f.commands, f.artifacts, f.cache, telemetry.NewNoop(), logger)
	return f
}

func TestRunJob_StepsInOrder(t *testing.T) {
	f := newFixture(t)

	var commands []string
	f.commands.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.CommandSpec) error {
			commands = append(commands, spec.Command)
			return nil
		}).Times(2)

	job := domain.Job{
		Name: "python3",
		Steps: []domain.Step{
			{Type: domain.StepCheckout},
			{Type: domain.StepRun, Command: "pip install -r requirements.txt"},
			{Type: domain.StepRun, Command: "make html"},
		},
	}

	result, err := f.runner.RunJob(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSucceeded, result.Status)
	assert.Equal(t, []string{"pip install -r requirements.txt", "make html"}, commands)
	require.Len(t, result.Axes, 1)
	assert.Equal(t, "default", result.Axes[0].Label)
	assert.Len(t, result.Axes[0].Steps, 3)
}

func TestRunJob_FailureSkipsRemainingSteps(t *testing.T) {
	f := newFixture(t)

	f.commands.EXPECT().Run(gomock.Any(), gomock.Any()).Return(zerr.New("command failed")).Times(1)

	job := domain.Job{
		Name: "python3",
		Steps: []domain.Step{
			{Type: domain.StepRun, Command: "make html"},
			{Type: domain.StepRun, Command: "never runs"},
		},
	}

	result, err := f.runner.RunJob(context.Background(), job)
	require.Error(t, err)

	assert.Equal(t, domain.StatusFailed, result.Status)
	steps := result.Axes[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, domain.StatusFailed, steps[0].Status)
	assert.Equal(t, domain.StatusSkipped, steps[1].Status)
}

func TestRunJob_OutputGateFailsDespiteExitZero(t *testing.T) {
	f := newFixture(t)

	// The command "succeeds" but prints a traceback into its output.
	f.commands.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.CommandSpec) error {
			_, err := spec.Output.Write([]byte("build ok\nTraceback (most recent call last):\n  boom\n"))
			return err
		}).Times(1)

	job := domain.Job{
		Name: "python3",
		Steps: []domain.Step{
			{Type: domain.StepRun, Command: "make html", FailOnOutput: "Traceback (most recent call last):"},
		},
	}

	result, err := f.runner.RunJob(context.Background(), job)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutputGate)
	assert.Equal(t, domain.StatusFailed, result.Status)
}

func TestRunJob_OutputGateCleanOutputPasses(t *testing.T) {
	f := newFixture(t)

	f.commands.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.CommandSpec) error {
			_, err := spec.Output.Write([]byte("build succeeded\n"))
			return err
		}).Times(1)

	job := domain.Job{
		Name: "python3",
		Steps: []domain.Step{
			{Type: domain.StepRun, Command: "make html", FailOnOutput: "Traceback (most recent call last):"},
		},
	}

	_, err := f.runner.RunJob(context.Background(), job)
	assert.NoError(t, err)
}

func TestRunJob_MatrixAxesAreIndependent(t *testing.T) {
	f := newFixture(t)

	var mu sync.Mutex
	var seen []string
	f.commands.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.CommandSpec) error {
			version := ""
			for _, e := range spec.Env {
				if v, ok := strings.CutPrefix(e, "PYTHON_VERSION="); ok {
					version = v
				}
			}
			mu.Lock()
			seen = append(seen, version)
			mu.Unlock()
			if version == "3.7" {
				return zerr.New("axis failed")
			}
			return nil
		}).Times(2)

	job := domain.Job{
		Name: "build-windows",
		Matrix: []domain.Axis{
			{"PYTHON_VERSION": "3.7"},
			{"PYTHON_VERSION": "3.8"},
		},
		Steps: []domain.Step{
			{Type: domain.StepRun, Command: "pip install -e ."},
		},
	}

	result, err := f.runner.RunJob(context.Background(), job)
	require.Error(t, err)

	// Both axes ran despite the 3.7 failure.
	slices.Sort(seen)
	assert.Equal(t, []string{"3.7", "3.8"}, seen)

	assert.Equal(t, domain.StatusFailed, result.Status)
	require.Len(t, result.Axes, 2)
	assert.Equal(t, domain.StatusFailed, result.Axes[0].Status)
	assert.Equal(t, domain.StatusSucceeded, result.Axes[1].Status)
}

func TestRunJob_CacheNamespacesAreAxisLocal(t *testing.T) {
	f := newFixture(t)

	var mu sync.Mutex
	namespaces := make(map[string]bool)
	f.cache.EXPECT().Restore(gomock.Any(), "deps", gomock.Any()).DoAndReturn(
		func(namespace, _, _ string) (bool, error) {
			mu.Lock()
			namespaces[namespace] = true
			mu.Unlock()
			return false, nil
		}).Times(2)

	job := domain.Job{
		Name: "build-windows",
		Matrix: []domain.Axis{
			{"PYTHON_VERSION": "3.7"},
			{"PYTHON_VERSION": "3.8"},
		},
		Steps: []domain.Step{
			{Type: domain.StepRestoreCache, Key: "deps"},
		},
	}

	_, err := f.runner.RunJob(context.Background(), job)
	require.NoError(t, err)
	assert.Len(t, namespaces, 2)
}

func TestRunJob_WorkspaceAndArtifactSteps(t *testing.T) {
	f := newFixture(t)

	record := domain.ArtifactRecord{Job: "python3", Destination: "html", Checksum: "abc"}

	gomock.InOrder(
		f.artifacts.EXPECT().PersistWorkspace("doc/_build", []string{"html"}).Return(nil),
		f.artifacts.EXPECT().StoreArtifact("python3", "build.log", "").Return(record, nil),
	)

	job := domain.Job{
		Name: "python3",
		Steps: []domain.Step{
			{Type: domain.StepPersistWorkspace, Root: "doc/_build", Paths: []string{"html"}},
			{Type: domain.StepStoreArtifacts, Path: "build.log"},
		},
	}

	result, err := f.runner.RunJob(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, "abc", result.Artifacts[0].Checksum)
}

func TestRunJob_EnvironmentPriority(t *testing.T) {
	f := newFixture(t)

	t.Setenv("MODULE", "from-process")

	var env []string
	f.commands.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.CommandSpec) error {
			env = spec.Env
			return nil
		}).Times(1)

	job := domain.Job{
		Name:        "build",
		Environment: map[string]string{"MODULE": "from-job", "PROJECT_NAME": "grakel"},
		Matrix:      []domain.Axis{{"MODULE": "from-axis"}},
		Steps: []domain.Step{
			{Type: domain.StepRun, Command: "env", Environment: map[string]string{"STEP_ONLY": "1"}},
		},
	}

	_, err := f.runner.RunJob(context.Background(), job)
	require.NoError(t, err)

	assert.Contains(t, env, "MODULE=from-axis")
	assert.Contains(t, env, "PROJECT_NAME=grakel")
	assert.Contains(t, env, "STEP_ONLY=1")
	assert.NotContains(t, env, "MODULE=from-job")
	assert.NotContains(t, env, "MODULE=from-process")
}
