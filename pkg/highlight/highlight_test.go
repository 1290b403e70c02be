package highlight

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
)

func sample() *document.Object {
	return document.ObjectOf(
		"name", "Ann",
		"photoBase64", "AAAAnn",
		"tags", []any{"Annex"},
		"pic", "data:image/png;base64,Ann=",
		"count", 3,
	)
}

func TestKeyAtOffset(t *testing.T) {
	r, err := Render(sample())
	require.NoError(t, err)
	text := r.Text

	tests := []struct {
		name    string
		offset  int
		wantKey string
		wantOK  bool
	}{
		{name: "inside member string", offset: strings.Index(text, `"Ann"`) + 2, wantKey: "name", wantOK: true},
		{name: "first content byte", offset: strings.Index(text, `"AAAAnn"`) + 1, wantKey: "photoBase64", wantOK: true},
		{name: "closing quote", offset: strings.Index(text, `"AAAAnn"`) + len(`"AAAAnn`), wantKey: "photoBase64", wantOK: true},
		{name: "array item", offset: strings.Index(text, `"Annex"`) + 1},
		{name: "inside key", offset: strings.Index(text, `"name"`) + 2},
		{name: "number value", offset: strings.Index(text, "3")},
		{name: "document start", offset: 0},
		{name: "past end", offset: len(text) + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := KeyAtOffset(text, tt.offset)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestKeyAtOffsetEscapedQuotes(t *testing.T) {
	text := "{\n  \"a\\\"b\": \"x\\\"y\"\n}"
	key, ok := KeyAtOffset(text, strings.Index(text, "y"))
	require.True(t, ok)
	assert.Equal(t, `a"b`, key)
}

func TestKeyAtAgreesWithKeyAtOffset(t *testing.T) {
	root, err := document.Parse([]byte(`{
		"title": "Gallery",
		"items": [{"url": "https://x.com/1.png", "size": 10}, "loose", {"imageData": "AAAA"}],
		"nested": {"deep": {"icon": "i.svg", "flag": true}},
		"empty": ""
	}`), document.FormatJSON)
	require.NoError(t, err)

	r, err := Render(root)
	require.NoError(t, err)

	for offset := 0; offset <= len(r.Text); offset++ {
		wantKey, wantOK := KeyAtOffset(r.Text, offset)
		gotKey, gotOK := r.KeyAt(offset)
		require.Equal(t, wantOK, gotOK, "offset %d", offset)
		require.Equal(t, wantKey, gotKey, "offset %d", offset)
	}
}

func TestRenderSpans(t *testing.T) {
	r, err := Render(sample())
	require.NoError(t, err)

	var paths []string
	for _, s := range r.Spans {
		paths = append(paths, s.Path)
		assert.Equal(t, byte('"'), r.Text[s.Start])
		assert.Equal(t, byte('"'), r.Text[s.End-1])
	}
	assert.Equal(t, []string{"name", "photoBase64", "tags[0]", "pic"}, paths)

	item, ok := r.SpanAt(strings.Index(r.Text, "Annex"))
	require.True(t, ok)
	assert.False(t, item.Member)
	assert.Equal(t, "tags", item.Owner)
	assert.Equal(t, "", item.Key)
}

func TestMatchesSuppressesImageData(t *testing.T) {
	r, err := Render(sample())
	require.NoError(t, err)

	got := Matches(r, "ann")
	want := []Match{
		{Start: strings.Index(r.Text, "Ann\""), End: strings.Index(r.Text, "Ann\"") + 3, Path: "name"},
		{Start: strings.Index(r.Text, "Annex"), End: strings.Index(r.Text, "Annex") + 3, Path: "tags[0]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Matches() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchesOutsideStrings(t *testing.T) {
	r, err := Render(sample())
	require.NoError(t, err)

	got := Matches(r, "count")
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Path)

	assert.Nil(t, Matches(r, ""))
	assert.Empty(t, Matches(r, "zzz"))
}

func TestMatchesQueryIsLiteral(t *testing.T) {
	r, err := Render(document.ObjectOf("note", "a.b (c)"))
	require.NoError(t, err)
	assert.Len(t, Matches(r, "(c)"), 1)
	assert.Empty(t, Matches(r, "a*b"))
}

func TestScanMatches(t *testing.T) {
	text := "{\n  \"name\": \"Ann\",\n  \"photoBase64\": \"AAAAnn\"\n}"
	got := ScanMatches(text, "ANN")
	require.Len(t, got, 1)
	assert.Equal(t, strings.Index(text, "Ann"), got[0].Start)
	assert.Nil(t, ScanMatches(text, ""))
}
