package document

import (
	"bytes"
	"encoding/json"
	"strings"
)

const indentUnit = "  "

// Step is one accessor on the way from the root to a value. Index is -1 for
// object members.
type Step struct {
	Key   string
	Index int
}

// StringHook is told where each string value landed in the printed output.
// start is the offset of the opening quote and end is one past the closing
// quote. steps is reused between calls and must not be retained.
type StringHook func(steps []Step, start, end int)

// MarshalIndent prints v as JSON with 2-space indentation, keeping object
// member order and leaving <, > and & unescaped.
func MarshalIndent(v any) ([]byte, error) {
	return MarshalIndentWithHook(v, nil)
}

// MarshalCompact prints v as single-line JSON, keeping object member order
// and leaving <, > and & unescaped.
func MarshalCompact(v any) ([]byte, error) {
	return marshalNoEscape(v)
}

type printFrame struct {
	entries []Entry
	items   []any
	isObj   bool
	next    int
}

func (f *printFrame) size() int {
	if f.isObj {
		return len(f.entries)
	}
	return len(f.items)
}

// MarshalIndentWithHook is MarshalIndent with a callback for every string
// value written. Nesting depth is bounded by memory, not the call stack.
func MarshalIndentWithHook(v any, hook StringHook) ([]byte, error) {
	var (
		buf    bytes.Buffer
		frames []*printFrame
		steps  []Step
	)

	// open writes v. Non-empty containers push a frame and are finished by
	// the loop below.
	open := func(v any) error {
		v, err := normalize(v)
		if err != nil {
			return err
		}
		if entries, ok := Entries(v); ok {
			if len(entries) == 0 {
				buf.WriteString("{}")
				return nil
			}
			buf.WriteByte('{')
			frames = append(frames, &printFrame{entries: entries, isObj: true})
			return nil
		}
		if items, ok := Elements(v); ok {
			if len(items) == 0 {
				buf.WriteString("[]")
				return nil
			}
			buf.WriteByte('[')
			frames = append(frames, &printFrame{items: items})
			return nil
		}
		start := buf.Len()
		if err := writeJSONScalar(&buf, v); err != nil {
			return err
		}
		if _, isString := v.(string); isString && hook != nil {
			hook(steps, start, buf.Len())
		}
		return nil
	}

	if err := open(v); err != nil {
		return nil, err
	}

	for len(frames) > 0 {
		depth := len(frames)
		top := frames[depth-1]

		if top.next == top.size() {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(indentUnit, depth-1))
			if top.isObj {
				buf.WriteByte('}')
			} else {
				buf.WriteByte(']')
			}
			frames = frames[:depth-1]
			if len(steps) > 0 {
				steps = steps[:len(steps)-1]
			}
			continue
		}

		if top.next > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indentUnit, depth))

		var child any
		if top.isObj {
			entry := top.entries[top.next]
			if err := writeJSONScalar(&buf, entry.Key); err != nil {
				return nil, err
			}
			buf.WriteString(": ")
			steps = append(steps, Step{Key: entry.Key, Index: -1})
			child = entry.Value
		} else {
			steps = append(steps, Step{Index: top.next})
			child = top.items[top.next]
		}
		top.next++

		before := len(frames)
		if err := open(child); err != nil {
			return nil, err
		}
		if len(frames) == before {
			// Leaf or empty container; its step ends here.
			steps = steps[:len(steps)-1]
		}
	}

	return buf.Bytes(), nil
}

// normalize converts values of foreign types into the document model by a
// JSON round trip.
func normalize(v any) (any, error) {
	switch v.(type) {
	case nil, bool, string, json.Number, float64, float32, int, int8, int16,
		int32, int64, uint, uint8, uint16, uint32, uint64, []any, map[string]any:
		return v, nil
	case *Object:
		if v.(*Object) == nil {
			return nil, nil
		}
		return v, nil
	}
	b, err := marshalNoEscape(v)
	if err != nil {
		return nil, err
	}
	return parseJSON(b)
}

// writeJSONScalar writes v as compact JSON without HTML escaping.
func writeJSONScalar(buf *bytes.Buffer, v any) error {
	b, err := marshalNoEscape(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
