package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := NewMap().
		Set("zebra", 1).
		Set("alpha", 2).
		Set("mike", 3)

	assert.Equal(t, []string{"zebra", "alpha", "mike"}, m.Keys())

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zebra: 1\nalpha: 2\nmike: 3\n", string(out))
}

func TestMapResetKeepsFirstPosition(t *testing.T) {
	m := NewMap().
		Set("a", 1).
		Set("b", 2).
		Set("a", 9)

	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestMapOmitsNilValues(t *testing.T) {
	m := NewMap().
		Set("present", "here").
		Set("absent", nil)

	_, ok := m.Get("absent")
	assert.False(t, ok)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "present: here\n", string(out))
	assert.NotContains(t, string(out), "null")
}

func TestMapSetNonEmpty(t *testing.T) {
	m := NewMap().
		SetNonEmpty("user", "admin").
		SetNonEmpty("password", "")

	assert.Equal(t, []string{"user"}, m.Keys())
}

func TestMapMarshalsNestedMaps(t *testing.T) {
	inner := NewMap().Set("days", 7).Set("mode", "motion")
	m := NewMap().Set("retain", inner)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "retain:\n    days: 7\n    mode: motion\n", string(out))
}
