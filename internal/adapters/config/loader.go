// Package config provides the pipeline configuration loader for relay.
package config

import (
	"os"

	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a pipeline definition from the given path.
func (l *Loader) Load(path string) (*domain.Pipeline, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read pipeline file")
	}

	var dto pipelineDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse pipeline file")
	}

	pipeline := &domain.Pipeline{
		Version:   dto.Version,
		Workflows: make(map[string]domain.Workflow, len(dto.Workflows)),
		Jobs:      make(map[string]domain.Job, len(dto.Jobs)),
	}

	for name, jobDTO := range dto.Jobs {
		job, err := buildJob(name, jobDTO)
		if err != nil {
			return nil, err
		}
		pipeline.Jobs[name] = job
	}

	for name, wfDTO := range dto.Workflows {
		wf := domain.Workflow{Jobs: make([]domain.WorkflowJob, 0, len(wfDTO.Jobs))}
		for _, entry := range wfDTO.Jobs {
			wf.Jobs = append(wf.Jobs, domain.WorkflowJob{
				Name:     entry.Name,
				Requires: entry.Requires,
				Branches: domain.BranchFilter{
					Only:   entry.Branches.Only,
					Ignore: entry.Branches.Ignore,
				},
			})
		}
		pipeline.Workflows[name] = wf
	}

	return pipeline, nil
}

func buildJob(name string, dto jobDTO) (domain.Job, error) {
	job := domain.Job{
		Name:        name,
		Image:       dto.Image,
		WorkingDir:  dto.WorkingDirectory,
		Environment: dto.Environment,
		Steps:       make([]domain.Step, 0, len(dto.Steps)),
	}

	for _, axis := range dto.Matrix {
		job.Matrix = append(job.Matrix, domain.Axis(axis))
	}

	for _, s := range dto.Steps {
		if err := validateStep(name, s.Step); err != nil {
			return domain.Job{}, err
		}
		job.Steps = append(job.Steps, s.Step)
	}

	return job, nil
}

// validateStep rejects steps missing their required parameters.
func validateStep(job string, s domain.Step) error {
	fail := func(field string) error {
		return zerr.With(zerr.With(zerr.With(
			zerr.New("step is missing a required field"),
			"job", job), "step", string(s.Type)), "field", field)
	}

	switch s.Type {
	case domain.StepRun:
		if s.Command == "" {
			return fail("command")
		}
	case domain.StepPersistWorkspace:
		if s.Root == "" {
			return fail("root")
		}
		if len(s.Paths) == 0 {
			return fail("paths")
		}
	case domain.StepAttachWorkspace:
		if s.At == "" {
			return fail("at")
		}
	case domain.StepStoreArtifacts:
		if s.Path == "" {
			return fail("path")
		}
	case domain.StepRestoreCache:
		if s.Key == "" {
			return fail("key")
		}
	case domain.StepSaveCache:
		if s.Key == "" {
			return fail("key")
		}
		if len(s.Paths) == 0 {
			return fail("paths")
		}
	case domain.StepCheckout:
	}
	return nil
}
