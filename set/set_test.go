package set

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestNew(t *testing.T) {
	s := New[int]()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(1))

	s.Add(1)
	s.Add(1)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(1))
}

func TestNewFromSlice(t *testing.T) {
	s := NewFromSlice([]string{"es", "cs", "ss", "ds", "ds"})
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains("cs"))
	assert.False(t, s.Contains("ip"))
}

func TestRemove(t *testing.T) {
	s := NewFromSlice([]int{1, 2})
	s.Remove(1)
	s.Remove(3)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(2))
}
