package neighbors

import (
	"sync"
	"sync/atomic"
)

// NeighborPool recycles the neighbor buffers that Classify fills for every
// query.
type NeighborPool struct {
	pool     sync.Pool
	inUse    int64
	created  int64
	recycled int64
	peak     int64
}

// PoolStats tracks pool usage
type PoolStats struct {
	TotalAllocated int64
	TotalRecycled  int64
	CurrentInUse   int64
	PeakUsage      int64
}

// NeighborBuffer is a reusable slice of neighbors.
type NeighborBuffer struct {
	Neighbors []Neighbor
	released  bool
}

// NewNeighborPool creates an empty pool.
func NewNeighborPool() *NeighborPool {
	p := &NeighborPool{}
	p.pool = sync.Pool{
		New: func() interface{} {
			atomic.AddInt64(&p.created, 1)
			return &NeighborBuffer{}
		},
	}
	return p
}

// Get returns a buffer holding n neighbors.
func (p *NeighborPool) Get(n int) *NeighborBuffer {
	current := atomic.AddInt64(&p.inUse, 1)
	for {
		peak := atomic.LoadInt64(&p.peak)
		if current <= peak || atomic.CompareAndSwapInt64(&p.peak, peak, current) {
			break
		}
	}

	b := p.pool.Get().(*NeighborBuffer)
	if cap(b.Neighbors) < n {
		b.Neighbors = make([]Neighbor, n)
	}
	b.Neighbors = b.Neighbors[:n]
	b.released = false
	return b
}

// Put returns b to the pool. Putting the same buffer twice is a no-op.
func (p *NeighborPool) Put(b *NeighborBuffer) {
	if b == nil || b.released {
		return
	}
	b.released = true
	atomic.AddInt64(&p.inUse, -1)
	atomic.AddInt64(&p.recycled, 1)
	p.pool.Put(b)
}

// Stats returns current pool statistics
func (p *NeighborPool) Stats() PoolStats {
	return PoolStats{
		TotalAllocated: atomic.LoadInt64(&p.created),
		TotalRecycled:  atomic.LoadInt64(&p.recycled),
		CurrentInUse:   atomic.LoadInt64(&p.inUse),
		PeakUsage:      atomic.LoadInt64(&p.peak),
	}
}

var defaultPool = NewNeighborPool()
