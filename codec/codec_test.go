package codec

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/densekit/bitvec"
	"github.com/hupe1980/densekit/byteset"
	"github.com/hupe1980/densekit/hashmap"
	"github.com/hupe1980/densekit/sparse"
)

func snapshotters(t *testing.T) map[string]*Snapshotter {
	t.Helper()
	return map[string]*Snapshotter{
		"none": NewSnapshotter(),
		"s2":   NewSnapshotter(WithCompression(CompressionS2)),
		"lz4":  NewSnapshotter(WithCompression(CompressionLZ4)),
	}
}

func TestSnapshotter_SealOpen(t *testing.T) {
	payload := bytes.Repeat([]byte("densekit snapshot payload "), 64)

	for name, s := range snapshotters(t) {
		t.Run(name, func(t *testing.T) {
			sealed, err := s.Seal(payload)
			require.NoError(t, err)

			got, codecName, err := s.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, "json", codecName)
		})
	}
}

func TestSnapshotter_Corruption(t *testing.T) {
	s := NewSnapshotter(WithLogger(slog.New(slog.DiscardHandler)))
	sealed, err := s.Seal([]byte("hello world, hello world"))
	require.NoError(t, err)

	// Flip a payload byte: checksum must catch it.
	bad := bytes.Clone(sealed)
	bad[len(bad)-6] ^= 0xff
	_, _, err = s.Open(bad)
	assert.ErrorIs(t, err, ErrChecksum)

	// Wrong magic.
	bad = bytes.Clone(sealed)
	bad[0] = 'x'
	_, _, err = s.Open(bad)
	assert.ErrorIs(t, err, ErrBadMagic)

	// Truncated.
	_, _, err = s.Open(sealed[:8])
	assert.ErrorIs(t, err, ErrTruncated)

	// Declared stored size far beyond the frame: the length check must not
	// wrap around.
	bad = bytes.Clone(sealed)
	binary.LittleEndian.PutUint32(bad[14:18], 0xfffffffd)
	_, _, err = s.Open(bad)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestMarshalBitVector(t *testing.T) {
	b := bitvec.New(1000)
	b.Set1Range(100, 600)
	b.Set1(999)

	for name, s := range snapshotters(t) {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalBitVector(s, b)
			require.NoError(t, err)

			got, err := UnmarshalBitVector(s, data)
			require.NoError(t, err)
			assert.True(t, b.Equal(got))
			assert.Equal(t, b.Len(), got.Len())
		})
	}
}

func TestMarshalMap(t *testing.T) {
	m := hashmap.New[uint32, string](8)
	m.Put(0, "zero")
	m.Put(7, "seven")
	m.Put(300, "three hundred")
	m.PutNull("null")

	s := NewSnapshotter(WithCompression(CompressionS2))
	data, err := MarshalMap(s, m)
	require.NoError(t, err)

	got, err := UnmarshalMap[uint32, string](s, data)
	require.NoError(t, err)
	assert.True(t, hashmap.Equal(m, got))

	// Deterministic bytes: same content, different insertion order.
	m2 := hashmap.New[uint32, string](64)
	m2.PutNull("null")
	m2.Put(300, "three hundred")
	m2.Put(0, "zero")
	m2.Put(7, "seven")
	data2, err := MarshalMap(s, m2)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestMarshalByteSet(t *testing.T) {
	set := byteset.Of(0, 3, 130, 255)
	set.AddNull()

	s := NewSnapshotter()
	data, err := MarshalByteSet(s, set)
	require.NoError(t, err)

	got, err := UnmarshalByteSet(s, data)
	require.NoError(t, err)
	assert.True(t, set.Equal(got))
}

func TestMarshalList(t *testing.T) {
	l := sparse.New[int](0, 0)
	l.Append(10)
	l.AppendNull()
	l.Append(20)
	l.SetNull(5) // trailing absent slots

	s := NewSnapshotter(WithCompression(CompressionLZ4))
	data, err := MarshalList(s, l)
	require.NoError(t, err)

	got, err := UnmarshalList[int](s, data)
	require.NoError(t, err)
	assert.True(t, sparse.Equal(l, got))
	assert.Equal(t, 6, got.Len())
}
