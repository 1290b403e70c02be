package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a source document syntax.
type Format string

const (
	// FormatAuto picks JSON or YAML from the file extension, then from the content.
	FormatAuto Format = "auto"
	// FormatJSON parses the input as JSON.
	FormatJSON Format = "json"
	// FormatYAML parses the input as YAML. JSON documents are valid YAML too.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// DetectFormat resolves FormatAuto for a named input.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes data into a value tree. Objects become *Object.
func Parse(data []byte, format Format) (any, error) {
	if format == FormatAuto {
		format = DetectFormat("", data)
	}
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// parseFrame is an open container on the JSON decode stack.
type parseFrame struct {
	obj     *Object
	arr     []any
	key     string
	haveKey bool
}

// parseJSON decodes with a token stream so member order survives and deep
// nesting does not grow the call stack.
func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		stack []*parseFrame
		root  any
		done  bool
	)

	attach := func(v any) {
		if len(stack) == 0 {
			root = v
			done = true
			return
		}
		top := stack[len(stack)-1]
		if top.obj != nil {
			top.obj.Set(top.key, v)
			top.haveKey = false
			return
		}
		top.arr = append(top.arr, v)
	}

	for !done {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(stack) == 0 {
				return nil, ErrEmptyDocument
			}
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.obj != nil && !top.haveKey {
				if d, ok := tok.(json.Delim); ok && d == '}' {
					stack = stack[:len(stack)-1]
					attach(top.obj)
					continue
				}
				key, ok := tok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %v at offset %d", ErrUnexpectedToken, tok, dec.InputOffset())
				}
				top.key = key
				top.haveKey = true
				continue
			}
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, &parseFrame{obj: NewObject()})
			case '[':
				stack = append(stack, &parseFrame{arr: []any{}})
			case ']':
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				attach(top.arr)
			default:
				return nil, fmt.Errorf("%w: %v at offset %d", ErrUnexpectedToken, t, dec.InputOffset())
			}
		default:
			attach(t)
		}
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return root, nil
}

// yamlNodesPerByte bounds alias expansion relative to the input size. A
// document without aliases never produces more nodes than it has bytes.
const (
	yamlNodesPerByte = 64
	yamlMinNodeLimit = 10000
)

func parseYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 || (node.Kind == yaml.DocumentNode && len(node.Content) == 0) {
		return nil, ErrEmptyDocument
	}
	c := &yamlConverter{
		expanding: make(map[*yaml.Node]bool),
		limit:     yamlMinNodeLimit + yamlNodesPerByte*len(data),
	}
	return c.convert(&node)
}

// yamlConverter turns a yaml.Node tree into the document model. Decoding into
// yaml.Node bypasses yaml.v3's alias checks, so they are enforced here.
// Recursion depth is bounded by yaml.v3's own nesting limit.
type yamlConverter struct {
	expanding map[*yaml.Node]bool
	nodes     int
	limit     int
}

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	c.nodes++
	if c.nodes > c.limit {
		return nil, fmt.Errorf("%w: more than %d nodes", ErrAliasExpansion, c.limit)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: unknown anchor %q at line %d", ErrUnexpectedToken, n.Value, n.Line)
		}
		return c.convert(n.Alias)
	case yaml.MappingNode:
		// An anchored node may contain an alias back to itself.
		if n.Anchor != "" {
			if c.expanding[n] {
				return nil, fmt.Errorf("%w: anchor %q at line %d", ErrAliasCycle, n.Anchor, n.Line)
			}
			c.expanding[n] = true
			defer delete(c.expanding, n)
		}
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w at line %d", ErrNonStringKey, keyNode.Line)
			}
			value, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		if n.Anchor != "" {
			if c.expanding[n] {
				return nil, fmt.Errorf("%w: anchor %q at line %d", ErrAliasCycle, n.Anchor, n.Line)
			}
			c.expanding[n] = true
			defer delete(c.expanding, n)
		}
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			value, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool", "!!int", "!!float":
			var v any
			if err := n.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return n.Value, nil
		}
	default:
		return nil, fmt.Errorf("%w: yaml node kind %d", ErrUnexpectedToken, n.Kind)
	}
}
