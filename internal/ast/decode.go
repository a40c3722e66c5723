package ast

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"
)

// attribute keys are decoded into typed fields and never treated as children.
var attributeKeys = map[string]bool{
	"type":       true,
	"name":       true,
	"visibility": true,
	"kind":       true,
	"loc":        true,
	"range":      true,
}

// Parse decodes a JSON syntax tree.
func Parse(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error decoding syntax tree: %w", err)
	}
	if root.Type == "" {
		return nil, fmt.Errorf("error decoding syntax tree: root has no type")
	}
	return &root, nil
}

// ParseFile reads and decodes the JSON syntax tree stored at path.
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// UnmarshalJSON decodes a parser node. Objects without a "type" key decode
// to a Node with an empty Type, which callers treat as "not a node".
func (n *Node) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	n.Type = Kind(stringField(fields, "type"))
	if n.Type == "" {
		return nil
	}
	n.Name = stringField(fields, "name")
	n.Visibility = Visibility(stringField(fields, "visibility"))
	n.Kind = ContractKind(stringField(fields, "kind"))

	if raw, ok := fields["loc"]; ok && !isNull(raw) {
		var loc Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			return fmt.Errorf("%s: invalid loc: %w", n.Type, err)
		}
		n.Loc = &loc
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		if !attributeKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	groups := make(map[string][]*Node, len(keys))
	children := make([]*Node, 0)
	for _, key := range keys {
		nodes, ok := decodeNodes(fields[key])
		if !ok {
			continue
		}
		groups[key] = nodes
		for _, child := range nodes {
			if child != nil {
				children = append(children, child)
			}
		}
	}
	sortByLocation(children)

	n.Parameters = groups["parameters"]
	n.ReturnParameters = groups["returnParameters"]
	n.Variables = groups["variables"]
	n.SubNodes = groups["subNodes"]
	n.Statements = groups["statements"]
	if body := groups["body"]; len(body) == 1 {
		n.Body = body[0]
	}
	n.Children = children

	return nil
}

// decodeNodes decodes raw as a single node or a list of nodes.
// ok is false when raw holds anything else (strings, numbers, flags).
func decodeNodes(raw json.RawMessage) (nodes []*Node, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}

	switch trimmed[0] {
	case '{':
		var child Node
		if err := json.Unmarshal(trimmed, &child); err != nil || child.Type == "" {
			return nil, false
		}
		return []*Node{&child}, true
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, false
		}
		nodes = make([]*Node, 0, len(elems))
		for _, elem := range elems {
			if isNull(elem) {
				nodes = append(nodes, nil)
				continue
			}
			var child Node
			if err := json.Unmarshal(elem, &child); err != nil || child.Type == "" {
				return nil, false
			}
			nodes = append(nodes, &child)
		}
		return nodes, true
	}
	return nil, false
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// sortByLocation puts children in document order. Nodes without a location
// keep their relative order and sort before located ones.
func sortByLocation(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return before(nodes[i].Loc, nodes[j].Loc)
	})
}

func before(a, b *Location) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	case a.Start.Line != b.Start.Line:
		return a.Start.Line < b.Start.Line
	default:
		return a.Start.Column < b.Start.Column
	}
}
