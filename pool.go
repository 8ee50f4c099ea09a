package cidgen

import (
	"sync"
)

const (
	pooledBufferMaxCap         = 1 << 10 // 1 KiB
	pooledSliceCapGrowthFactor = 2
)

// buffers holds scratch space shared by canonicalization and CID assembly.
var buffers = newPool()

type pool struct {
	bufferPool sync.Pool
}

type buffer struct {
	buf []byte
	p   *pool
}

func newPool() *pool {
	var p pool
	p.bufferPool.New = func() any {
		return &buffer{
			buf: make([]byte, 0, pooledBufferMaxCap),
			p:   &p,
		}
	}
	return &p
}

func (p *pool) leaseBuffer() *buffer {
	return p.bufferPool.Get().(*buffer)
}

func (b *buffer) append(v ...byte) {
	b.buf = append(b.buf, v...)
}

func (b *buffer) maybeGrow(n int) {
	l := len(b.buf)
	switch {
	case n <= cap(b.buf)-l:
	case l == 0:
		b.buf = make([]byte, 0, n*pooledSliceCapGrowthFactor)
	default:
		b.buf = append(make([]byte, 0, (l+n)*pooledSliceCapGrowthFactor), b.buf...)
	}
}

func (b *buffer) Close() error {
	if cap(b.buf) <= pooledBufferMaxCap {
		b.buf = b.buf[:0]
		b.p.bufferPool.Put(b)
	}
	return nil
}
