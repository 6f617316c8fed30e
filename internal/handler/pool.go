package handler

import (
	"bytes"
	"encoding/json"
	"sync"
)

const (
	// responseBufferSize fits a typical spin result without growing
	responseBufferSize = 1024
	// maxRetainedBuffer keeps one oversized history page from pinning its
	// buffer in the pool for the life of the process
	maxRetainedBuffer = 64 << 10
)

// bufferPool recycles response encoding buffers up to a retained size cap.
type bufferPool struct {
	pool        sync.Pool
	maxRetained int
}

func newBufferPool(size, maxRetained int) *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any { return bytes.NewBuffer(make([]byte, 0, size)) },
		},
		maxRetained: maxRetained,
	}
}

func (p *bufferPool) get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// put returns buf to the pool and reports whether it was kept.
func (p *bufferPool) put(buf *bytes.Buffer) bool {
	if buf.Cap() > p.maxRetained {
		return false
	}
	buf.Reset()
	p.pool.Put(buf)
	return true
}

var responseBuffers = newBufferPool(responseBufferSize, maxRetainedBuffer)

// encodeResponse renders payload into a pooled buffer before any header is
// written, so an unencodable payload can still become a 500. Callers release
// the buffer with responseBuffers.put.
func encodeResponse(payload any) (*bytes.Buffer, error) {
	buf := responseBuffers.get()
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		responseBuffers.put(buf)
		return nil, err
	}
	return buf, nil
}
