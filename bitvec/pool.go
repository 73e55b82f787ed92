package bitvec

import "sync"

// Pool is a pool of reusable BitVectors of a fixed logical size.
// Thread-safe. Callers doing transient rank/select work can borrow a
// cleared vector instead of allocating one per operation.
type Pool struct {
	pool sync.Pool
	size int
}

// NewPool creates a pool handing out vectors of the given size.
func NewPool(size int) *Pool {
	return &Pool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return New(size)
			},
		},
	}
}

// Get retrieves a cleared vector from the pool.
func (p *Pool) Get() *BitVector {
	return p.pool.Get().(*BitVector)
}

// Put returns a vector to the pool. Vectors that grew past the pool size
// are kept; they simply serve later borrowers with more headroom.
func (p *Pool) Put(b *BitVector) {
	if b == nil {
		return
	}
	b.Clear()
	b.size = p.size
	p.pool.Put(b)
}
