// Package pool reuses render buffers across requests and live renders.
package pool

import (
	"bytes"
	"sync"
)

// MaxBufferSize is the largest buffer returned to the pool.
const MaxBufferSize = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves a buffer from the pool, resetting it for use.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. Buffers that grew past
// MaxBufferSize are dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > MaxBufferSize {
		return
	}
	bufferPool.Put(buf)
}
