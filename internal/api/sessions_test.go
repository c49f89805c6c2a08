package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_TTL(t *testing.T) {
	now := testNow
	r := newRegistry[int](time.Minute, 0, func() time.Time { return now }, nil)

	id, evicted := r.create("", 1)
	assert.NotEmpty(t, id)
	assert.Empty(t, evicted)

	now = now.Add(30 * time.Second)
	assert.True(t, r.with(id, func(v *int) { *v++ }), "touch keeps it alive")

	now = now.Add(59 * time.Second)
	var got int
	assert.True(t, r.with(id, func(v *int) { got = *v }))
	assert.Equal(t, 2, got)

	now = now.Add(2 * time.Minute)
	assert.False(t, r.with(id, func(*int) {}), "expired")
	assert.Equal(t, 0, r.len())
}

func TestRegistry_MaxEvictsLeastRecentlyUsed(t *testing.T) {
	now := testNow
	r := newRegistry[string](0, 2, func() time.Time { return now }, nil)

	a, _ := r.create("a", "a")
	now = now.Add(time.Second)
	b, _ := r.create("b", "b")
	now = now.Add(time.Second)
	r.with(a, func(*string) {})
	now = now.Add(time.Second)

	_, evicted := r.create("c", "c")
	assert.Equal(t, []string{b}, evicted)
	assert.Equal(t, 2, r.len())
	assert.True(t, r.with(a, func(*string) {}))
}

func TestRegistry_Remove(t *testing.T) {
	r := newRegistry[int](0, 0, time.Now, nil)
	id, _ := r.create("", 7)

	v, ok := r.remove(id)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = r.remove(id)
	assert.False(t, ok)
}
