// Package suggest asks an external classifier which key names of a document
// are likely to hold images. Its output feeds detection as suggested fields.
//
// Every Suggester may fail. Callers wrap one in Resilient to get the
// degrade-to-no-suggestions behaviour.
package suggest

import (
	"context"
	"sort"
)

// Suggester returns the subset of keys predicted to hold image data.
type Suggester interface {
	Suggest(ctx context.Context, keys []string) ([]string, error)
}

// Func adapts an ordinary function to Suggester.
type Func func(ctx context.Context, keys []string) ([]string, error)

// Suggest implements Suggester.
func (f Func) Suggest(ctx context.Context, keys []string) ([]string, error) {
	return f(ctx, keys)
}

// None never suggests anything.
type None struct{}

// Suggest implements Suggester.
func (None) Suggest(context.Context, []string) ([]string, error) {
	return nil, nil
}

// Static suggests a fixed list of field names, limited to the keys present.
type Static struct {
	Fields []string
}

// Suggest implements Suggester.
func (s Static) Suggest(_ context.Context, keys []string) ([]string, error) {
	return restrictTo(s.Fields, keys), nil
}

// restrictTo keeps the names in fields that also appear in keys, once each,
// sorted.
func restrictTo(fields, keys []string) []string {
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	seen := make(map[string]struct{}, len(fields))
	out := []string{}
	for _, f := range fields {
		if _, ok := known[f]; !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
