package commands_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relay/cmd/relay/commands"
	"go.trai.ch/relay/internal/adapters/telemetry"
	"go.trai.ch/relay/internal/app"
	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/relay/internal/core/ports/mocks"
	"go.trai.ch/relay/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type cliFixture struct {
	loader   *mocks.MockConfigLoader
	jobs     *mocks.MockJobRunner
	store    *mocks.MockRunStore
	renderer *mocks.MockGraphRenderer
	cli      *commands.CLI
	out      *bytes.Buffer
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &cliFixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		jobs:     mocks.NewMockJobRunner(ctrl),
		store:    mocks.NewMockRunStore(ctrl),
		renderer: mocks.NewMockGraphRenderer(ctrl),
		out:      &bytes.Buffer{},
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	sched := scheduler.NewScheduler(f.jobs, logger, telemetry.NewNoop())
	f.cli = commands.New(app.New(f.loader, sched, f.store, f.renderer, logger))
	f.cli.SetOutput(f.out)
	return f
}

func pipeline() *domain.Pipeline {
	return &domain.Pipeline{
		Version: "2",
		Workflows: map[string]domain.Workflow{
			"docs": {Jobs: []domain.WorkflowJob{
				{Name: "build-docs"},
				{Name: "deploy", Requires: []string{"build-docs"}, Branches: domain.BranchFilter{Only: []string{"develop"}}},
			}},
		},
		Jobs: map[string]domain.Job{"build-docs": {}, "deploy": {}},
	}
}

func TestRunCommand(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load("relay.yaml").Return(pipeline(), nil)
	f.jobs.EXPECT().RunJob(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job domain.Job) (domain.JobResult, error) {
			return domain.JobResult{Job: job.Name, Status: domain.StatusSucceeded}, nil
		}).Times(2)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	f.cli.SetArgs([]string{"run", "docs", "--branch", "develop"})
	require.NoError(t, f.cli.Execute(context.Background()))

	assert.Contains(t, f.out.String(), "workflow docs finished: Succeeded")
}

func TestRunCommand_CustomConfigPath(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load("ci/pipeline.yaml").Return(pipeline(), nil)
	f.jobs.EXPECT().RunJob(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job domain.Job) (domain.JobResult, error) {
			return domain.JobResult{Job: job.Name, Status: domain.StatusSucceeded}, nil
		}).Times(1) // deploy is gated away on main
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	f.cli.SetArgs([]string{"run", "docs", "--config", "ci/pipeline.yaml"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRunCommand_FailurePropagates(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load("relay.yaml").Return(pipeline(), nil)
	f.jobs.EXPECT().RunJob(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job domain.Job) (domain.JobResult, error) {
			return domain.JobResult{Job: job.Name, Status: domain.StatusFailed}, domain.ErrOutputGate
		}).Times(1)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	f.cli.SetArgs([]string{"run", "docs", "--branch", "develop"})
	err := f.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRunFailed)
}

func TestPlanCommand(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load("relay.yaml").Return(pipeline(), nil)

	f.cli.SetArgs([]string{"plan", "docs", "--branch", "main"})
	require.NoError(t, f.cli.Execute(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "build-docs")
	assert.Contains(t, out, "deploy (requires build-docs) - skipped on branch main")
}

func TestGraphCommand(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load("relay.yaml").Return(pipeline(), nil)
	f.renderer.EXPECT().RenderDOT("docs", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ string, _ *domain.JobGraph, w io.Writer) error {
			_, err := w.Write([]byte("digraph docs {}\n"))
			return err
		})

	f.cli.SetArgs([]string{"graph", "docs"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "digraph")
}

func TestUnknownWorkflow(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load("relay.yaml").Return(pipeline(), nil)

	f.cli.SetArgs([]string{"plan", "release"})
	err := f.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownWorkflow)
}
