// Package pool holds sync.Pool backed free lists for scratch buffers.
package pool

import "sync"

const defaultCapacity = 64

type ByteSlicePool struct {
	pool sync.Pool
}

var byteSlicePool = &ByteSlicePool{
	pool: sync.Pool{
		New: func() any {
			b := make([]byte, 0, defaultCapacity)
			return &b
		},
	},
}

// ByteSlice returns the shared byte slice pool.
func ByteSlice() *ByteSlicePool {
	return byteSlicePool
}

// Get returns an empty slice with a capacity of at least 64 bytes.
func (p *ByteSlicePool) Get() []byte {
	return p.GetCapacity(defaultCapacity)
}

// GetCapacity returns an empty slice with a capacity of at least n bytes.
func (p *ByteSlicePool) GetCapacity(n int) []byte {
	b := *(p.pool.Get().(*[]byte))
	if cap(b) < n {
		return make([]byte, 0, n)
	}
	return b[:0]
}

func (p *ByteSlicePool) Put(b []byte) {
	// do not keep huge buffers around
	if cap(b) > 64*1024 {
		return
	}
	b = b[:0]
	p.pool.Put(&b)
}
