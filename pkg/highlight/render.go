package highlight

import (
	"regexp"
	"sort"

	"github.com/lucas-albers-lz4/jsonimg/pkg/detection"
	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/jsonpath"
)

// Span locates one string value in a Rendering. Start is the opening quote
// and End is one past the closing quote.
type Span struct {
	Start int
	End   int
	// Path is the path expression of the value.
	Path string
	// Key is the member key when Member is set.
	Key string
	// Member is set for object member values and clear for array items.
	Member bool
	// Owner is the nearest enclosing member key. It equals Key for members
	// and names the array's key for array items.
	Owner string
}

// Rendering is indented JSON text with the position of every string value.
type Rendering struct {
	Text  string
	Spans []Span
}

// Render prints v with 2-space indentation and records string value spans.
func Render(v any) (*Rendering, error) {
	var spans []Span
	out, err := document.MarshalIndentWithHook(v, func(steps []document.Step, start, end int) {
		s := Span{Start: start, End: end, Path: jsonpath.FromSteps(steps)}
		for i := len(steps) - 1; i >= 0; i-- {
			if steps[i].Index < 0 {
				s.Owner = steps[i].Key
				if i == len(steps)-1 {
					s.Key = steps[i].Key
					s.Member = true
				}
				break
			}
		}
		spans = append(spans, s)
	})
	if err != nil {
		return nil, err
	}
	return &Rendering{Text: string(out), Spans: spans}, nil
}

// SpanAt returns the string value span whose content holds offset. The
// range matches KeyAtOffset: after the opening quote up to and including the
// closing quote.
func (r *Rendering) SpanAt(offset int) (Span, bool) {
	i := sort.Search(len(r.Spans), func(i int) bool { return r.Spans[i].End > offset })
	if i < len(r.Spans) && r.Spans[i].Start < offset {
		return r.Spans[i], true
	}
	return Span{}, false
}

// KeyAt answers KeyAtOffset from the side table.
func (r *Rendering) KeyAt(offset int) (string, bool) {
	s, ok := r.SpanAt(offset)
	if !ok || !s.Member {
		return "", false
	}
	return s.Key, true
}

// Match is one occurrence of a search query in a Rendering.
type Match struct {
	Start int
	End   int
	// Path is the path of the string value the match falls in, if any.
	Path string
}

// Matches returns the case-insensitive occurrences of query in r.Text,
// leaving out those that touch embedded image data: values of keys named
// like image data, and values that contain a data URI.
func Matches(r *Rendering, query string) []Match {
	if query == "" {
		return nil
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))

	var out []Match
	for _, loc := range re.FindAllStringIndex(r.Text, -1) {
		m := Match{Start: loc[0], End: loc[1]}
		blocked := false
		for _, s := range r.overlapping(loc[0], loc[1]) {
			if isImageData(r.Text, s) {
				blocked = true
				break
			}
			m.Path = s.Path
		}
		if !blocked {
			out = append(out, m)
		}
	}
	return out
}

// ScanMatches is Matches for text that has no side table, such as a
// pretty-printed file read from disk. It relies on KeyAtOffset and so only
// recognises member values by their key.
func ScanMatches(text, query string) []Match {
	if query == "" {
		return nil
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))

	var out []Match
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if key, ok := KeyAtOffset(text, loc[0]+1); ok && detection.HasLiteralDataURIKeyword(key) {
			continue
		}
		out = append(out, Match{Start: loc[0], End: loc[1]})
	}
	return out
}

func (r *Rendering) overlapping(start, end int) []Span {
	i := sort.Search(len(r.Spans), func(i int) bool { return r.Spans[i].End > start })
	j := i
	for j < len(r.Spans) && r.Spans[j].Start < end {
		j++
	}
	return r.Spans[i:j]
}

func isImageData(text string, s Span) bool {
	if detection.HasLiteralDataURIKeyword(s.Owner) {
		return true
	}
	return detection.IsDataURI(text[s.Start:s.End])
}
