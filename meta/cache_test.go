package meta

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_UnorderedPair(t *testing.T) {
	c, err := NewCache(4, nil)
	require.NoError(t, err)

	person, contact := reflect.TypeFor[Person](), reflect.TypeFor[Contact]()
	md := &Metadata{A: person, B: contact}
	c.Add(md)

	got, ok := c.Get(contact, person)
	require.True(t, ok)
	assert.Same(t, md, got)

	got, ok = c.Get(person, contact)
	require.True(t, ok)
	assert.Same(t, md, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Evict(t *testing.T) {
	var evicted []*Metadata

	c, err := NewCache(2, func(md *Metadata) { evicted = append(evicted, md) })
	require.NoError(t, err)

	person, contact, stranger := reflect.TypeFor[Person](), reflect.TypeFor[Contact](), reflect.TypeFor[Stranger]()
	first := &Metadata{A: person, B: contact}
	second := &Metadata{A: person, B: stranger}
	third := &Metadata{A: contact, B: stranger}

	c.Add(first)
	c.Add(second)
	_, _ = c.Get(person, contact) // first becomes most recent
	c.Add(third)

	require.Len(t, evicted, 1)
	assert.Same(t, second, evicted[0])

	_, ok := c.Get(stranger, person)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func localRowA() reflect.Type {
	type Row struct{ A int }
	return reflect.TypeFor[Row]()
}

func localRowB() reflect.Type {
	type Row struct{ B int }
	return reflect.TypeFor[Row]()
}

func TestCache_SameName(t *testing.T) {
	a, b := localRowA(), localRowB()
	require.NotEqual(t, a, b)
	require.Equal(t, a.String(), b.String())
	assert.Equal(t, keyOf(a, b), keyOf(b, a))
}

func TestNewCache_Capacity(t *testing.T) {
	_, err := NewCache(0, nil)
	assert.ErrorIs(t, err, ErrCapacity)
}
