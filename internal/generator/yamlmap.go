package generator

import (
	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered mapping used to build the output document. The
// target engine is sensitive to key order and treats an explicit null
// differently from an absent key, so Map preserves the order sections are
// built in and drops nil values instead of emitting them.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores a value under key, keeping first-insertion order on re-set.
// A nil value removes nothing and stores nothing: absent means omitted.
func (m *Map) Set(key string, value any) *Map {
	if value == nil {
		return m
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// SetNonEmpty stores a string value only when it is non-empty.
func (m *Map) SetNonEmpty(key, value string) *Map {
	if value == "" {
		return m
	}
	return m.Set(key, value)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of stored keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalYAML implements yaml.Marshaler, emitting keys in insertion order.
// Nested values (including nested Maps) are encoded through the regular
// yaml.v3 machinery, so no anchors or aliases are ever generated for them.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.keys {
		value := m.values[key]
		if value == nil {
			continue
		}

		keyNode := &yaml.Node{}
		keyNode.SetString(key)

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
