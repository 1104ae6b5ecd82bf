package envmerge

// Package envmerge flattens an ordered list of environments into a single
// variable mapping. The merge is deterministic in the input order only:
// later environments override earlier ones on key collision, and nothing
// is sorted by name, id, or creation time.

import (
	"sort"

	"github.com/devharbor/devharbor/domain/model"
)

// Merge folds the environments' variable maps in the given order with
// last-writer-wins on key collision. An empty input yields an empty map.
// Environments with nil variable maps contribute nothing.
func Merge(envs []*model.Environment) map[string]string {
	merged := make(map[string]string)
	for _, e := range envs {
		if e == nil {
			continue
		}
		for k, v := range e.Variables {
			merged[k] = v
		}
	}
	return merged
}

// Slice renders a merged mapping as KEY=VALUE pairs with keys sorted, the
// form container engines accept. Sorting keeps the container spec stable
// across runs so unchanged workspaces do not look modified to the engine.
func Slice(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+vars[k])
	}
	return out
}
