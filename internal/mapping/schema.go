package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AnyType in a mappable list accepts every partner type.
const AnyType = "*"

// File is a declaration file.
type File struct {
	Version string  `yaml:"version"`
	Classes []Class `yaml:"classes"`
}

// Class holds the declarations of one type.
type Class struct {
	Type     string        `yaml:"type"`
	Mappable StringOrArray `yaml:"mappable,omitempty"`
	MapTo    MapToEntries  `yaml:"map_to,omitempty"`
	Ignore   []string      `yaml:"ignore,omitempty"`
}

// MapToEntry reroutes Property to Path; Elem names the element type of a
// collection. {elem: T} without a path keeps the property name.
type MapToEntry struct {
	Property string
	Path     string
	Elem     string
}

// Target is the path the property maps to.
func (e MapToEntry) Target() string {
	if e.Path == "" && e.Elem != "" {
		return e.Property
	}

	return e.Path
}

// MapToEntries keeps map_to entries in file order.
type MapToEntries []MapToEntry

// StringOrArray accepts a single string or a list of strings.
type StringOrArray []string

func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		*s = StringOrArray{}
		if str != "" {
			*s = StringOrArray{str}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil
	}

	return fmt.Errorf("line %d: expected string or list, got %s", node.Line, kindName(node.Kind))
}

func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// UnmarshalYAML reads a mapping of property to either a path string or a
// {path, elem} mapping.
func (m *MapToEntries) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: map_to must be a mapping, got %s", node.Line, kindName(node.Kind))
	}

	out := make(MapToEntries, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		entry := MapToEntry{Property: key.Value}

		switch val.Kind {
		case yaml.ScalarNode:
			entry.Path = val.Value

		case yaml.MappingNode:
			var full struct {
				Path string `yaml:"path"`
				Elem string `yaml:"elem"`
			}

			if err := val.Decode(&full); err != nil {
				return fmt.Errorf("map_to.%s: %w", key.Value, err)
			}

			entry.Path, entry.Elem = full.Path, full.Elem

		default:
			return fmt.Errorf("line %d: map_to.%s must be a path or {path, elem}", val.Line, key.Value)
		}

		out = append(out, entry)
	}

	*m = out

	return nil
}

func (m MapToEntries) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, e := range m {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: e.Property}

		val := &yaml.Node{Kind: yaml.ScalarNode, Value: e.Path}
		if e.Elem != "" {
			val = &yaml.Node{Kind: yaml.MappingNode}
			if e.Path != "" {
				val.Content = append(val.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "path"},
					&yaml.Node{Kind: yaml.ScalarNode, Value: e.Path})
			}

			val.Content = append(val.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "elem"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: e.Elem})
		}

		node.Content = append(node.Content, key, val)
	}

	return node, nil
}

// Entry returns the map_to entry of a property.
func (c *Class) Entry(property string) (MapToEntry, bool) {
	for _, e := range c.MapTo {
		if e.Property == property {
			return e, true
		}
	}

	return MapToEntry{}, false
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}

	return "unknown"
}
