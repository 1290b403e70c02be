// Package document defines the in-memory JSON value model used by jsonimg,
// loads JSON and YAML documents into it, and prints it back as indented JSON.
//
// A value is one of nil, bool, a number (json.Number or a Go numeric type),
// string, []any, or an object. Objects produced by this package are *Object,
// which remembers member insertion order. Plain map[string]any values are
// accepted wherever a tree is read; their members are visited in sorted key
// order.
package document

import (
	"bytes"
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Object is a JSON object that preserves member insertion order.
// The zero value is an empty object ready for use.
type Object struct {
	keys   []string
	values map[string]any
}

// Entry is a single object member.
type Entry struct {
	Key   string
	Value any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds an Object from alternating key/value arguments.
// It panics when a key is not a string or the argument count is odd; it is
// meant for literals in tests and examples.
func ObjectOf(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("document.ObjectOf: odd number of arguments")
	}
	o := NewObject()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("document.ObjectOf: key is not a string")
		}
		o.Set(k, kv[i+1])
	}
	return o
}

// FromMap converts a plain map into an Object with keys in sorted order.
func FromMap(m map[string]any) *Object {
	o := NewObject()
	for _, k := range sortedKeys(m) {
		o.Set(k, m[k])
	}
	return o
}

// Set assigns value to key. A new key is appended; an existing key keeps its
// position and takes the new value.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is a member.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Entries returns the members in insertion order.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	out := make([]Entry, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, Entry{Key: k, Value: o.values[k]})
	}
	return out
}

// MarshalJSON encodes the object with members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONScalar(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		b, err := marshalNoEscape(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the object as a YAML mapping in insertion order.
func (o *Object) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(yamlValue(o.values[k])); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// MarshalYAML prints any document value as YAML, keeping object member order.
func MarshalYAML(v any) ([]byte, error) {
	return yaml.Marshal(yamlValue(v))
}

// Entries returns the members of an object-like value: *Object in insertion
// order, map[string]any in sorted key order. ok is false for anything else.
func Entries(v any) (entries []Entry, ok bool) {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil, false
		}
		return t.Entries(), true
	case map[string]any:
		out := make([]Entry, 0, len(t))
		for _, k := range sortedKeys(t) {
			out = append(out, Entry{Key: k, Value: t[k]})
		}
		return out, true
	default:
		return nil, false
	}
}

// Elements returns the items of an array value.
func Elements(v any) ([]any, bool) {
	items, ok := v.([]any)
	return items, ok
}

// Member looks up key on an object-like value.
func Member(v any, key string) (any, bool) {
	switch t := v.(type) {
	case *Object:
		return t.Get(key)
	case map[string]any:
		val, ok := t[key]
		return val, ok
	default:
		return nil, false
	}
}

// IsContainer reports whether v is an object or an array.
func IsContainer(v any) bool {
	if _, ok := Entries(v); ok {
		return true
	}
	_, ok := Elements(v)
	return ok
}

// yamlValue turns json.Number into a native number so YAML output does not
// quote it, descending into arrays. Objects handle themselves.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
