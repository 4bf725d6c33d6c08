package config

import (
	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// pipelineDTO is the on-disk shape of a relay.yaml file.
type pipelineDTO struct {
	Version   string                 `yaml:"version"`
	Workflows map[string]workflowDTO `yaml:"workflows"`
	Jobs      map[string]jobDTO      `yaml:"jobs"`
}

type workflowDTO struct {
	Jobs []workflowJobDTO `yaml:"jobs"`
}

// workflowJobDTO accepts either a bare job name or a mapping with
// requires and branch filters.
type workflowJobDTO struct {
	Name     string
	Requires []string
	Branches branchFilterDTO
}

func (d *workflowJobDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&d.Name)
	}

	var raw struct {
		Name     string          `yaml:"name"`
		Requires []string        `yaml:"requires"`
		Branches branchFilterDTO `yaml:"branches"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	d.Name = raw.Name
	d.Requires = raw.Requires
	d.Branches = raw.Branches
	return nil
}

type branchFilterDTO struct {
	Only   []string `yaml:"only"`
	Ignore []string `yaml:"ignore"`
}

type jobDTO struct {
	Image            string              `yaml:"image"`
	WorkingDirectory string              `yaml:"working_directory"`
	Environment      map[string]string   `yaml:"environment"`
	Matrix           []map[string]string `yaml:"matrix"`
	Steps            []stepDTO           `yaml:"steps"`
}

// stepDTO accepts the step union: a bare scalar for parameterless steps
// ("checkout") or a single-key mapping whose key is the step type.
type stepDTO struct {
	domain.Step
}

type runStepDTO struct {
	Name         string            `yaml:"name"`
	Command      string            `yaml:"command"`
	Environment  map[string]string `yaml:"environment"`
	FailOnOutput string            `yaml:"fail_on_output"`
}

type persistStepDTO struct {
	Root  string   `yaml:"root"`
	Paths []string `yaml:"paths"`
}

type attachStepDTO struct {
	At string `yaml:"at"`
}

type artifactsStepDTO struct {
	Path        string `yaml:"path"`
	Destination string `yaml:"destination"`
}

type cacheStepDTO struct {
	Key   string   `yaml:"key"`
	Paths []string `yaml:"paths"`
}

func (d *stepDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		if domain.StepType(name) != domain.StepCheckout {
			return zerr.With(domain.ErrUnknownStepType, "step", name)
		}
		d.Type = domain.StepCheckout
		return nil
	}

	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return zerr.With(domain.ErrUnknownStepType, "line", node.Line)
	}

	key := node.Content[0].Value
	body := node.Content[1]

	switch domain.StepType(key) {
	case domain.StepRun:
		var raw runStepDTO
		// `- run: make html` is shorthand for a command-only run step.
		if body.Kind == yaml.ScalarNode {
			if err := body.Decode(&raw.Command); err != nil {
				return err
			}
		} else if err := body.Decode(&raw); err != nil {
			return err
		}
		d.Type = domain.StepRun
		d.Name = raw.Name
		d.Command = raw.Command
		d.Environment = raw.Environment
		d.FailOnOutput = raw.FailOnOutput

	case domain.StepPersistWorkspace:
		var raw persistStepDTO
		if err := body.Decode(&raw); err != nil {
			return err
		}
		d.Type = domain.StepPersistWorkspace
		d.Root = raw.Root
		d.Paths = raw.Paths

	case domain.StepAttachWorkspace:
		var raw attachStepDTO
		if err := body.Decode(&raw); err != nil {
			return err
		}
		d.Type = domain.StepAttachWorkspace
		d.At = raw.At

	case domain.StepStoreArtifacts:
		var raw artifactsStepDTO
		if err := body.Decode(&raw); err != nil {
			return err
		}
		d.Type = domain.StepStoreArtifacts
		d.Path = raw.Path
		d.Destination = raw.Destination

	case domain.StepRestoreCache, domain.StepSaveCache:
		var raw cacheStepDTO
		if err := body.Decode(&raw); err != nil {
			return err
		}
		d.Type = domain.StepType(key)
		d.Key = raw.Key
		d.Paths = raw.Paths

	default:
		return zerr.With(domain.ErrUnknownStepType, "step", key)
	}

	return nil
}
