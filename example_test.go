package densekit_test

import (
	"fmt"

	"github.com/hupe1980/densekit/bitvec"
	"github.com/hupe1980/densekit/hashmap"
	"github.com/hupe1980/densekit/sparse"
)

func Example_bitVector() {
	b := bitvec.New(128)
	b.Set1Range(3, 70)

	fmt.Println(b.Rank(69))
	fmt.Println(b.Next0(3))
	fmt.Println(b.Prev1(127))
	// Output:
	// 67
	// 70
	// 69
}

func Example_hashMap() {
	m := hashmap.New[uint8, int](4)
	m.Put(5, 1)
	m.Put(0, 2) // a real zero key lives beside the array
	m.Put(255, 4)

	v, _ := m.Get(0)
	fmt.Println(m.Len(), v)

	m.Remove(5)
	fmt.Println(m.Contains(5), m.Contains(255))
	// Output:
	// 3 2
	// false true
}

func Example_sparseList() {
	l := sparse.New[int](4, 4)
	l.Set(0, 10)
	l.SetNull(1)
	l.Set(2, 20)

	_, ok := l.Get(1)
	fmt.Println(ok)
	fmt.Println(l.Dense())
	// Output:
	// false
	// [10 20]
}
