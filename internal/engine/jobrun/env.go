package jobrun

import (
	"os"
	"slices"
	"strings"
)

// mergeEnvironment builds the axis environment with the priority
// (low to high): process environment, job environment, axis bindings.
func mergeEnvironment(jobEnv map[string]string, axis map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range jobEnv {
		envMap[k] = v
	}
	for k, v := range axis {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// applyOverrides layers step-level variables over an existing environment.
func applyOverrides(env []string, overrides map[string]string) []string {
	result := make([]string, 0, len(env)+len(overrides))
	for _, entry := range env {
		k, _, ok := strings.Cut(entry, "=")
		if ok {
			if _, overridden := overrides[k]; overridden {
				continue
			}
		}
		result = append(result, entry)
	}
	for k, v := range overrides {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
