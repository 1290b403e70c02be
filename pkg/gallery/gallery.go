// Package gallery holds the presentation rules for listing found images:
// paging, filtering, and display truncation.
package gallery

import (
	"strings"
	"unicode/utf8"

	"github.com/lucas-albers-lz4/jsonimg/pkg/detection"
	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/jsonpath"
)

const (
	// DefaultColumns is the grid width used for out-of-range column counts.
	DefaultColumns = 3
	// MaxColumns is the widest grid.
	MaxColumns = 6
	// DefaultPageSize is the number of images shown at once.
	DefaultPageSize = 12
	// MaxValueLength is the display width of a value before truncation.
	MaxValueLength = 100
)

// ClampStart converts a 1-based start position typed by a user into a
// 0-based index within total images. Anything below 1 means the first image,
// anything past the end means the last.
func ClampStart(oneBased, total int) int {
	if oneBased < 1 {
		oneBased = 1
	}
	if total > 0 && oneBased > total {
		oneBased = total
	} else if total == 0 {
		oneBased = 1
	}
	return oneBased - 1
}

// Page returns up to count images starting at the 0-based index start.
func Page(images []detection.FoundImage, start, count int) []detection.FoundImage {
	if start < 0 {
		start = 0
	}
	if start >= len(images) || count <= 0 {
		return []detection.FoundImage{}
	}
	end := start + count
	if end > len(images) {
		end = len(images)
	}
	return images[start:end]
}

// ClampColumns limits a grid column count to 1..MaxColumns, falling back to
// DefaultColumns.
func ClampColumns(n int) int {
	if n < 1 || n > MaxColumns {
		return DefaultColumns
	}
	return n
}

// Truncate shortens value to max characters, ending in "..." when cut.
func Truncate(value string, max int) string {
	if max < 4 || utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	return string(runes[:max-3]) + "..."
}

// ParentContext is the compact JSON of the object or array holding the
// image, or "" when the path does not resolve.
func ParentContext(root any, img detection.FoundImage) string {
	parent, ok := jsonpath.GetParentObject(root, img.Path)
	if !ok {
		return ""
	}
	b, err := document.MarshalCompact(parent)
	if err != nil {
		return ""
	}
	return string(b)
}

// Filter keeps images whose path, value, or parent context contains query,
// ignoring case. An empty query keeps everything.
func Filter(root any, images []detection.FoundImage, query string) []detection.FoundImage {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return images
	}
	out := []detection.FoundImage{}
	for _, img := range images {
		if strings.Contains(strings.ToLower(img.Path), q) ||
			strings.Contains(strings.ToLower(img.Value), q) ||
			strings.Contains(strings.ToLower(ParentContext(root, img)), q) {
			out = append(out, img)
		}
	}
	return out
}
