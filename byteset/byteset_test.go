package byteset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddContainsRemove(t *testing.T) {
	s := New()

	assert.True(t, s.Add(5))
	assert.False(t, s.Add(5))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Add(0))
	assert.True(t, s.Add(255))
	assert.Equal(t, 3, s.Len())

	assert.True(t, s.Remove(5))
	assert.False(t, s.Remove(5))
	assert.False(t, s.Contains(5))
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(255))
	assert.Equal(t, 2, s.Len())
}

func TestSet_Null(t *testing.T) {
	s := New()
	assert.False(t, s.ContainsNull())
	assert.True(t, s.AddNull())
	assert.False(t, s.AddNull())
	assert.True(t, s.ContainsNull())
	assert.Equal(t, 0, s.Len(), "null member does not count")
	assert.False(t, s.IsEmpty())

	assert.True(t, s.RemoveNull())
	assert.False(t, s.RemoveNull())
	assert.True(t, s.IsEmpty())
}

func TestSet_Rank(t *testing.T) {
	s := Of(3, 10, 200)

	// Present keys: 1-based position in ascending order.
	assert.Equal(t, 1, s.Rank(3))
	assert.Equal(t, 2, s.Rank(10))
	assert.Equal(t, 3, s.Rank(200))

	// Absent keys: bitwise complement of the insertion point.
	assert.Equal(t, ^0, s.Rank(0))
	assert.Equal(t, ^1, s.Rank(5))
	assert.Equal(t, ^2, s.Rank(100))
	assert.Equal(t, ^3, s.Rank(255))
}

func TestSet_Iteration(t *testing.T) {
	s := Of(200, 3, 64, 10, 63)

	var got []byte
	for k := range s.All() {
		got = append(got, k)
	}
	assert.Equal(t, []byte{3, 10, 63, 64, 200}, got, "iteration must be ascending")
}

func TestSet_NextPrev(t *testing.T) {
	s := Of(10, 70, 255)

	assert.Equal(t, 10, s.Next(0))
	assert.Equal(t, 10, s.Next(10))
	assert.Equal(t, 70, s.Next(11))
	assert.Equal(t, 255, s.Next(71))
	assert.Equal(t, -1, New().Next(0))

	assert.Equal(t, 255, s.Prev(255))
	assert.Equal(t, 70, s.Prev(254))
	assert.Equal(t, 10, s.Prev(69))
	assert.Equal(t, -1, s.Prev(9))
}

func TestSet_CloneEqualHash(t *testing.T) {
	s := Of(1, 2, 3)
	s.AddNull()

	c := s.Clone()
	assert.True(t, s.Equal(c))
	assert.Equal(t, s.Hash(), c.Hash())

	c.Add(4)
	assert.False(t, s.Equal(c))
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(4), "clone must be independent")

	d := Of(1, 2, 3)
	assert.False(t, s.Equal(d), "null membership is part of equality")
	d.AddNull()
	assert.True(t, s.Equal(d))
}

func TestSet_ClearString(t *testing.T) {
	s := Of(1, 5)
	s.AddNull()
	assert.Equal(t, "{null, 1, 5}", s.String())

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, "{}", s.String())
}
