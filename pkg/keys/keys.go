// Package keys collects the member keys that appear anywhere in a document.
package keys

import (
	"sort"

	"github.com/lucas-albers-lz4/jsonimg/pkg/walk"
)

// Set is an unordered set of key names.
type Set map[string]struct{}

// Has reports whether key is in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CollectKeys returns every member key of every object reachable from root,
// including objects nested in arrays.
func CollectKeys(root any) Set {
	set := make(Set)
	walk.Walk(root, func(n walk.Node) walk.Action {
		if n.IsMember() {
			set[n.Key] = struct{}{}
		}
		return walk.Continue
	})
	return set
}

// Sorted is CollectKeys(root).Sorted().
func Sorted(root any) []string {
	return CollectKeys(root).Sorted()
}
