// Package planes pools the float64 channel planes effects work on, so that
// per-frame effect passes do not allocate a new plane set every frame.
package planes

import "sync"

// Plane wraps one channel's samples.
type Plane struct {
	values []float64
}

// Values returns the underlying slice.
func (p *Plane) Values() []float64 {
	return p.values
}

// Len returns the number of samples.
func (p *Plane) Len() int {
	return len(p.values)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Every sample is zeroed.
func (p *Plane) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(p.values) {
		p.values = p.values[:n]
		clear(p.values)
		return
	}
	p.values = make([]float64, n)
}

// Pool provides sync.Pool-based Plane reuse.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Plane{}
			},
		},
	}
}

// Get returns a zeroed Plane of length n. Return it with Put when done.
func (p *Pool) Get(n int) *Plane {
	pl := p.pool.Get().(*Plane)
	pl.Resize(n)
	return pl
}

// Put returns planes to the pool. They must not be used afterwards.
func (p *Pool) Put(planes ...*Plane) {
	for _, pl := range planes {
		if pl != nil {
			p.pool.Put(pl)
		}
	}
}
