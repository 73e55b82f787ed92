package hashmap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PutGetRemove(t *testing.T) {
	m := New[uint32, string](8)

	assert.True(t, m.IsEmpty())
	assert.False(t, m.Put(1, "a"))
	assert.True(t, m.Put(1, "b"), "second put must report a prior value")
	assert.Equal(t, 1, m.Len())

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = m.Get(2)
	assert.False(t, ok)

	assert.True(t, m.Remove(1))
	assert.False(t, m.Remove(1))
	assert.True(t, m.IsEmpty())
}

func TestMap_ZeroAndNullKeys(t *testing.T) {
	m := New[int16, int](4)

	assert.False(t, m.Put(0, 42))
	assert.True(t, m.Contains(0))
	v, ok := m.Get(0)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.False(t, m.PutNull(7))
	assert.True(t, m.ContainsNull())
	nv, ok := m.GetNull()
	require.True(t, ok)
	assert.Equal(t, 7, nv)

	// Zero and null entries never collide with array-stored keys.
	for k := int16(1); k <= 20; k++ {
		m.Put(k, int(k))
	}
	assert.Equal(t, 22, m.Len())
	v, _ = m.Get(0)
	assert.Equal(t, 42, v)
	nv, _ = m.GetNull()
	assert.Equal(t, 7, nv)

	assert.True(t, m.Remove(0))
	assert.False(t, m.Contains(0))
	assert.True(t, m.RemoveNull())
	assert.False(t, m.ContainsNull())
	assert.Equal(t, 20, m.Len())
}

func TestMap_ByteKeyedScenario(t *testing.T) {
	m := New[uint8, int](4)
	keys := []uint8{5, 0, 130, 255}
	values := []int{1, 2, 3, 4}
	for i, k := range keys {
		m.Put(k, values[i])
	}

	assert.Equal(t, 4, m.Len())
	v, _ := m.Get(0)
	assert.Equal(t, 2, v)
	v, _ = m.Get(255)
	assert.Equal(t, 4, v)

	assert.True(t, m.Remove(5))
	assert.False(t, m.Contains(5))
	for _, k := range []uint8{0, 130, 255} {
		assert.True(t, m.Contains(k), "key %d must survive remove(5)", k)
	}
}

func TestMap_ResizePreservesEntries(t *testing.T) {
	m := New[uint64, uint64](4, WithLoadFactor(0.75))
	capBefore := m.Capacity()

	n := m.resizeAt
	for i := 1; i <= n; i++ {
		m.Put(uint64(i), uint64(i)*10)
	}
	assert.Greater(t, m.Capacity(), capBefore, "hitting resizeAt must grow exactly once")
	assert.Equal(t, 2*capBefore, m.Capacity())

	for i := 1; i <= n; i++ {
		v, ok := m.Get(uint64(i))
		require.True(t, ok, "key %d lost across resize", i)
		assert.Equal(t, uint64(i)*10, v)
	}
}

func TestMap_BackwardShiftDeletion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := New[uint32, uint32](16)
	ref := make(map[uint32]uint32)

	for step := 0; step < 20000; step++ {
		k := uint32(rng.Intn(500))
		if rng.Intn(3) == 0 {
			delete(ref, k)
			m.Remove(k)
		} else {
			v := uint32(step)
			ref[k] = v
			m.Put(k, v)
		}
	}

	require.Equal(t, len(ref), m.Len())
	for k, v := range ref {
		got, ok := m.Get(k)
		require.True(t, ok, "key %d lost", k)
		require.Equal(t, v, got, "key %d has wrong value", k)
	}
	// Every key not in the reference map must be absent: backward-shift must
	// not duplicate or resurrect entries.
	for k := uint32(0); k < 500; k++ {
		if _, ok := ref[k]; !ok {
			require.False(t, m.Contains(k), "key %d resurrected", k)
		}
	}
}

func TestMap_TokenCursor(t *testing.T) {
	m := New[int32, string](8)
	m.Put(0, "zero")
	m.PutNull("null")
	m.Put(9, "nine")
	m.Put(-3, "minus three")

	var sawNull, sawZero bool
	var order []int
	collected := make(map[int32]string)
	for tok := m.FirstToken(); tok != TokenNone; tok = m.NextToken(tok) {
		switch {
		case m.IsNullToken(tok):
			sawNull = true
			order = append(order, 0)
		case m.KeyAt(tok) == 0:
			sawZero = true
			order = append(order, 1)
			collected[0] = m.ValueAt(tok)
		default:
			order = append(order, 2)
			collected[m.KeyAt(tok)] = m.ValueAt(tok)
		}
	}

	assert.True(t, sawNull)
	assert.True(t, sawZero)
	// Null first, then zero, then array slots.
	require.Len(t, order, 4)
	assert.Equal(t, []int{0, 1, 2, 2}, order)
	assert.Equal(t, map[int32]string{0: "zero", 9: "nine", -3: "minus three"}, collected)
}

func TestMap_TokenLookupAndSetValue(t *testing.T) {
	m := New[uint16, int](8)
	m.Put(11, 1)

	tok := m.Token(11)
	require.NotEqual(t, TokenNone, tok)
	assert.Equal(t, uint16(11), m.KeyAt(tok))
	m.SetValueAt(tok, 99)
	v, _ := m.Get(11)
	assert.Equal(t, 99, v)

	assert.Equal(t, TokenNone, m.Token(12))
}

func TestMap_FloatKeys(t *testing.T) {
	m := New[float64, int](8)
	m.Put(1.5, 1)
	m.Put(-2.25, 2)
	m.Put(0.0, 3)

	v, ok := m.Get(1.5)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, _ = m.Get(0.0)
	assert.Equal(t, 3, v)
	assert.True(t, m.Remove(-2.25))
	assert.False(t, m.Contains(-2.25))
}

func TestMap_NaNKeys(t *testing.T) {
	m := New[float64, int](8)
	nan := math.NaN()

	assert.False(t, m.Put(nan, 1))
	assert.True(t, m.Contains(nan))
	assert.True(t, m.Put(nan, 2), "second put must update, not insert a duplicate")
	assert.Equal(t, 1, m.Len())

	v, ok := m.Get(nan)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	assert.True(t, m.Remove(nan))
	assert.False(t, m.Contains(nan))
	assert.True(t, m.IsEmpty())
}

func TestMap_CloneEqualHash(t *testing.T) {
	a := New[uint32, string](4)
	a.Put(0, "z")
	a.Put(5, "five")
	a.PutNull("n")

	b := a.Clone()
	assert.True(t, Equal(a, b))
	assert.Equal(t, HashMap(a), HashMap(b))

	b.Put(6, "six")
	assert.False(t, Equal(a, b))
	assert.False(t, a.Contains(6), "clone must be independent")

	// Same content, different insertion order and capacity.
	c := New[uint32, string](64)
	c.PutNull("n")
	c.Put(5, "five")
	c.Put(0, "z")
	assert.True(t, Equal(a, c))
	assert.Equal(t, HashMap(a), HashMap(c))
}

func TestMap_NullEntryHashDistinct(t *testing.T) {
	// The null entry must not hash like a real key, even one whose bit
	// pattern is all ones.
	a := New[int64, int](4)
	a.PutNull(7)
	b := New[int64, int](4)
	b.Put(-1, 7)

	assert.False(t, Equal(a, b))
	assert.NotEqual(t, HashMap(a), HashMap(b))

	sa := NewSet[int64](4)
	sa.AddNull()
	sb := NewSet[int64](4)
	sb.Add(-1)
	assert.False(t, sa.Equal(sb))
	assert.NotEqual(t, sa.Hash(), sb.Hash())
}

func TestMap_SortedKeys(t *testing.T) {
	m := New[int64, int](8)
	for _, k := range []int64{42, 0, -7, 13} {
		m.Put(k, int(k))
	}
	keys := m.SortedKeys(func(a, b int64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	assert.Equal(t, []int64{-7, 0, 13, 42}, keys)
}

func TestMap_String(t *testing.T) {
	m := New[uint8, int](4)
	m.PutNull(9)
	out := m.String()
	assert.Contains(t, out, "null -> 9")
}

func TestCapacityFor(t *testing.T) {
	assert.Equal(t, minCapacity, capacityFor(0, 0.75))
	assert.Equal(t, minCapacity, capacityFor(3, 0.75))
	assert.Equal(t, 8, capacityFor(4, 0.75))
	assert.Equal(t, 16, capacityFor(12, 0.75))
	assert.Equal(t, 32, capacityFor(13, 0.75))
}

func BenchmarkMap_Put(b *testing.B) {
	m := New[uint64, uint64](b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Put(uint64(i)+1, uint64(i))
	}
}

func BenchmarkMap_Get(b *testing.B) {
	m := New[uint64, uint64](1 << 16)
	for i := 0; i < 1<<16; i++ {
		m.Put(uint64(i)+1, uint64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(uint64(i&(1<<16-1)) + 1)
	}
}
