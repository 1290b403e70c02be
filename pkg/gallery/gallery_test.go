package gallery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/jsonimg/pkg/detection"
	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
)

func images(n int) []detection.FoundImage {
	out := make([]detection.FoundImage, n)
	for i := range out {
		out[i] = detection.FoundImage{Path: "p", Value: strings.Repeat("v", i+1), Kind: detection.KindURL}
	}
	return out
}

func TestClampStart(t *testing.T) {
	tests := []struct {
		name     string
		oneBased int
		total    int
		want     int
	}{
		{name: "first", oneBased: 1, total: 5, want: 0},
		{name: "middle", oneBased: 3, total: 5, want: 2},
		{name: "below one", oneBased: -4, total: 5, want: 0},
		{name: "past end", oneBased: 9, total: 5, want: 4},
		{name: "no images", oneBased: 3, total: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampStart(tt.oneBased, tt.total))
		})
	}
}

func TestPage(t *testing.T) {
	all := images(5)
	assert.Equal(t, all[1:3], Page(all, 1, 2))
	assert.Equal(t, all[3:], Page(all, 3, 10))
	assert.Equal(t, all[:2], Page(all, -1, 2))
	assert.Empty(t, Page(all, 5, 2))
	assert.Empty(t, Page(all, 0, 0))
	assert.Empty(t, Page(nil, 0, 3))
}

func TestClampColumns(t *testing.T) {
	for n := 1; n <= 6; n++ {
		assert.Equal(t, n, ClampColumns(n))
	}
	assert.Equal(t, 3, ClampColumns(0))
	assert.Equal(t, 3, ClampColumns(7))
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", 100)
	assert.Equal(t, short, Truncate(short, MaxValueLength))

	long := strings.Repeat("b", 101)
	got := Truncate(long, MaxValueLength)
	assert.Len(t, got, 100)
	assert.Equal(t, strings.Repeat("b", 97)+"...", got)

	assert.Equal(t, "ééé...", Truncate(strings.Repeat("é", 10), 6))
}

func TestFilter(t *testing.T) {
	root, err := document.Parse([]byte(`{
		"products": [
			{"name": "Red Shoe", "photo": "https://x.com/shoe.png"},
			{"name": "Blue Hat", "photo": "https://x.com/hat.png"}
		],
		"logo": "https://x.com/logo.svg"
	}`), document.FormatJSON)
	require.NoError(t, err)
	found := detection.FindImages(root)
	require.Len(t, found, 3)

	// A top-level image has the whole document as its parent context.
	byContext := Filter(root, found, "blue hat")
	require.Len(t, byContext, 2)
	assert.Equal(t, "products[1].photo", byContext[0].Path)
	assert.Equal(t, "logo", byContext[1].Path)

	byValue := Filter(root, found, "LOGO.SVG")
	require.Len(t, byValue, 1)
	assert.Equal(t, "logo", byValue[0].Path)

	byPath := Filter(root, found, "products[0]")
	require.Len(t, byPath, 1)

	assert.Equal(t, found, Filter(root, found, "  "))
	assert.Empty(t, Filter(root, found, "nothing like this"))
}

func TestParentContext(t *testing.T) {
	root := document.ObjectOf("a", document.ObjectOf("img", "<x>.png"))
	got := ParentContext(root, detection.FoundImage{Path: "a.img"})
	assert.Equal(t, `{"img":"<x>.png"}`, got)
	assert.Equal(t, "", ParentContext(root, detection.FoundImage{Path: "z.q.img"}))
}
