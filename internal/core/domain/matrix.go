package domain

import (
	"slices"
	"strings"
)

// Axis is one matrix variant of a job: a set of environment variable
// bindings that multiplies the job into an independent run.
type Axis map[string]string

// Label returns a deterministic human-readable identity for the axis,
// built from its bindings in sorted key order.
func (a Axis) Label() string {
	if len(a) == 0 {
		return "default"
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(a[k])
	}
	return b.String()
}

// ExpandMatrix returns the axes a job fans out into. A job without a
// matrix runs as a single empty axis.
func ExpandMatrix(job Job) []Axis {
	if len(job.Matrix) == 0 {
		return []Axis{nil}
	}
	return job.Matrix
}
