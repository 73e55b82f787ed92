package codec

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/hupe1980/densekit/bitvec"
	"github.com/hupe1980/densekit/byteset"
	"github.com/hupe1980/densekit/hashmap"
	"github.com/hupe1980/densekit/sparse"
)

// MarshalBitVector seals the vector's word dump.
func MarshalBitVector(s *Snapshotter, b *bitvec.BitVector) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return s.Seal(buf.Bytes())
}

// UnmarshalBitVector opens a frame produced by MarshalBitVector.
func UnmarshalBitVector(s *Snapshotter, data []byte) (*bitvec.BitVector, error) {
	payload, _, err := s.Open(data)
	if err != nil {
		return nil, err
	}
	b := bitvec.New(0)
	if _, err := b.ReadFrom(bytes.NewReader(payload)); err != nil {
		return nil, err
	}
	return b, nil
}

type mapEntry[K hashmap.Key, V any] struct {
	Key   K `json:"k"`
	Value V `json:"v"`
}

type mapSnapshot[K hashmap.Key, V any] struct {
	Entries   []mapEntry[K, V] `json:"entries"`
	HasNull   bool             `json:"has_null,omitempty"`
	NullValue V                `json:"null_value,omitempty"`
}

// MarshalMap seals a map. Entries are written in ascending key order so
// equal maps always produce identical bytes.
func MarshalMap[K hashmap.Key, V any](s *Snapshotter, m *hashmap.Map[K, V]) ([]byte, error) {
	snap := mapSnapshot[K, V]{
		Entries: make([]mapEntry[K, V], 0, m.Len()),
	}
	for _, key := range m.SortedKeys(cmp.Compare[K]) {
		value, _ := m.Get(key)
		snap.Entries = append(snap.Entries, mapEntry[K, V]{Key: key, Value: value})
	}
	if nv, ok := m.GetNull(); ok {
		snap.HasNull = true
		snap.NullValue = nv
	}

	payload, err := s.codec.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return s.Seal(payload)
}

// UnmarshalMap opens a frame produced by MarshalMap.
func UnmarshalMap[K hashmap.Key, V any](s *Snapshotter, data []byte) (*hashmap.Map[K, V], error) {
	payload, name, err := s.Open(data)
	if err != nil {
		return nil, err
	}
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("codec: unknown codec %q in snapshot", name)
	}
	var snap mapSnapshot[K, V]
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	m := hashmap.New[K, V](len(snap.Entries))
	for _, e := range snap.Entries {
		m.Put(e.Key, e.Value)
	}
	if snap.HasNull {
		m.PutNull(snap.NullValue)
	}
	return m, nil
}

type byteSetSnapshot struct {
	Keys    []byte `json:"keys"`
	HasNull bool   `json:"has_null,omitempty"`
}

// MarshalByteSet seals a byte set; members serialize in ascending order by
// construction.
func MarshalByteSet(s *Snapshotter, set *byteset.Set) ([]byte, error) {
	snap := byteSetSnapshot{
		Keys:    make([]byte, 0, set.Len()),
		HasNull: set.ContainsNull(),
	}
	for k := range set.All() {
		snap.Keys = append(snap.Keys, k)
	}
	payload, err := s.codec.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return s.Seal(payload)
}

// UnmarshalByteSet opens a frame produced by MarshalByteSet.
func UnmarshalByteSet(s *Snapshotter, data []byte) (*byteset.Set, error) {
	payload, name, err := s.Open(data)
	if err != nil {
		return nil, err
	}
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("codec: unknown codec %q in snapshot", name)
	}
	var snap byteSetSnapshot
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	set := byteset.New()
	for _, k := range snap.Keys {
		set.Add(k)
	}
	if snap.HasNull {
		set.AddNull()
	}
	return set, nil
}

type listSnapshot[V any] struct {
	Size  int  `json:"size"`
	Slots []*V `json:"slots"` // nil marks an absent slot
}

// MarshalList seals a sparse list. Slots serialize in logical order with
// nil for absent entries.
func MarshalList[V any](s *Snapshotter, l *sparse.List[V]) ([]byte, error) {
	snap := listSnapshot[V]{
		Size:  l.Len(),
		Slots: make([]*V, l.Len()),
	}
	for i, v := range l.Values() {
		snap.Slots[i] = &v
	}
	payload, err := s.codec.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return s.Seal(payload)
}

// UnmarshalList opens a frame produced by MarshalList.
func UnmarshalList[V any](s *Snapshotter, data []byte) (*sparse.List[V], error) {
	payload, name, err := s.Open(data)
	if err != nil {
		return nil, err
	}
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("codec: unknown codec %q in snapshot", name)
	}
	var snap listSnapshot[V]
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	l := sparse.New[V](snap.Size, len(snap.Slots))
	for _, slot := range snap.Slots {
		if slot == nil {
			l.AppendNull()
		} else {
			l.Append(*slot)
		}
	}
	for l.Len() < snap.Size {
		l.AppendNull()
	}
	return l, nil
}
