// Package jsonpath builds and resolves the dotted/bracketed path expressions
// that identify a value inside a document, e.g. "user.photos[2].url".
//
// Keys are not escaped. A key that itself contains "." or "[n]" produces a
// path that does not resolve back to the same value.
package jsonpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
)

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// Join appends an object member access to parent.
func Join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// Index appends an array element access to parent.
func Index(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

// FromSteps renders a printer step list as a path expression.
func FromSteps(steps []document.Step) string {
	var p string
	for _, s := range steps {
		if s.Index >= 0 {
			p = Index(p, s.Index)
			continue
		}
		p = Join(p, s.Key)
	}
	return p
}

// Normalize rewrites every "[i]" accessor as ".i".
func Normalize(path string) string {
	return indexPattern.ReplaceAllString(path, ".$1")
}

// Segments splits a path into its accessors after normalization. A path that
// starts with an index (a root-level array) does not yield an empty first
// segment.
func Segments(path string) []string {
	normalized := Normalize(path)
	if strings.HasPrefix(path, "[") {
		normalized = strings.TrimPrefix(normalized, ".")
	}
	return strings.Split(normalized, ".")
}

// Resolve walks root through segments and returns the value reached.
func Resolve(root any, segments []string) (any, error) {
	current := root
	for i, seg := range segments {
		if v, ok := document.Member(current, seg); ok {
			current = v
			continue
		}
		if _, isObject := document.Entries(current); isObject {
			return nil, fmt.Errorf("%w: element '%s' (index %d)", ErrPathNotFound, seg, i)
		}

		items, ok := document.Elements(current)
		if !ok {
			return nil, fmt.Errorf("%w: cannot traverse element '%s' (index %d) of a %T", ErrPathElementNotMap, seg, i, current)
		}
		idx, err := strconv.Atoi(seg)
		if err != nil || strconv.Itoa(idx) != seg {
			return nil, fmt.Errorf("%w: '%s' (index %d)", ErrInvalidArrayIndex, seg, i)
		}
		if idx < 0 || idx >= len(items) {
			return nil, fmt.Errorf("%w: %d (len %d) at element %d", ErrArrayIndexOutOfBounds, idx, len(items), i)
		}
		current = items[idx]
	}
	return current, nil
}

// GetParentObject returns the object or array that directly contains the
// value at path. A single-segment path has root as its parent. ok is false
// when root is not a container, path is empty, or any segment but the last
// fails to resolve to a container.
func GetParentObject(root any, path string) (any, bool) {
	if path == "" || !document.IsContainer(root) {
		return nil, false
	}
	segments := Segments(path)
	if len(segments) <= 1 {
		return root, true
	}
	parent, err := Resolve(root, segments[:len(segments)-1])
	if err != nil || !document.IsContainer(parent) {
		return nil, false
	}
	return parent, true
}

// GetValueAtPath resolves every segment of path, including the last. The
// empty path denotes root.
func GetValueAtPath(root any, path string) (any, bool) {
	if path == "" {
		return root, true
	}
	v, err := Resolve(root, Segments(path))
	if err != nil {
		return nil, false
	}
	return v, true
}
