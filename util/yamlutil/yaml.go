package yamlutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flatten decodes YAML document b into a map of dotted keys to values.
// e.g. `podman: {binary: {path: x}}` becomes `podman.binary.path: x`.
// Sequences are not flattened.
func Flatten(b []byte) (map[string]any, error) {
	vals := map[string]any{}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	// empty document
	if len(doc.Content) == 0 {
		return vals, nil
	}
	if l := len(doc.Content); l != 1 {
		return nil, fmt.Errorf("unexpected error during yaml decode: doc has multiple children of len %d", l)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml document is not a mapping")
	}

	if err := traverseNode("", root, vals); err != nil {
		return nil, fmt.Errorf("error traversing yaml node: %w", err)
	}
	return vals, nil
}

// Encode encodes a map of dotted keys to values as a nested YAML document.
func Encode(vals map[string]any) ([]byte, error) {
	root := map[string]any{}

	for key, val := range vals {
		parts := strings.Split(key, ".")
		m := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := m[part].(map[string]any)
			if !ok {
				if _, exists := m[part]; exists {
					return nil, fmt.Errorf("key '%s' conflicts with a value at '%s'", key, part)
				}
				child = map[string]any{}
				m[part] = child
			}
			m = child
		}

		last := parts[len(parts)-1]
		if _, ok := m[last].(map[string]any); ok {
			return nil, fmt.Errorf("key '%s' conflicts with a section", key)
		}
		m[last] = val
	}

	b, err := encode(root)
	if err != nil {
		return nil, fmt.Errorf("error encoding yaml: %w", err)
	}
	return b, nil
}

// Save encodes vals with Encode and writes them to file.
func Save(vals map[string]any, file string) error {
	b, err := Encode(vals)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, b, 0644); err != nil {
		return fmt.Errorf("error writing yaml file: %w", err)
	}

	return nil
}

func traverseNode(parentKey string, node *yaml.Node, vals map[string]any) error {
	switch node.Kind {
	case yaml.MappingNode:
		if l := len(node.Content); l%2 != 0 {
			return fmt.Errorf("uneven children of %d found for mapping node", l)
		}
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i].Value
			val := node.Content[i+1]
			if parentKey != "" {
				key = parentKey + "." + key
			}

			if err := traverseNode(key, val, vals); err != nil {
				return err
			}
		}
		return nil

	case yaml.AliasNode:
		return traverseNode(parentKey, node.Alias, vals)
	}

	// scalars and sequences are values
	var val any
	if err := node.Decode(&val); err != nil {
		return fmt.Errorf("error decoding value of '%s': %w", parentKey, err)
	}
	vals[parentKey] = val
	return nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(v)
	return buf.Bytes(), err
}
