// Package ring implements bounded ring buffers with non-blocking
// try-push/try-pop semantics.
//
// Two strategies are provided: Ring, a lock-free MPMC buffer using per-slot
// sequence numbers and cursor CAS, and SpinRing, a CAS-spinlock-guarded
// buffer with a single critical section. Both return full/empty sentinels
// instead of blocking; there is no backpressure mechanism.
package ring
