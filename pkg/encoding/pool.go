package encoding

import (
	"bytes"
	"sync"

	"github.com/beevik/etree"
)

var (
	// BufferPool pools bytes.Buffer for XML document serialization
	// Every outgoing MPI request is written through one of these
	BufferPool = sync.Pool{
		New: func() interface{} {
			return new(bytes.Buffer)
		},
	}
)

// GetBuffer retrieves a bytes.Buffer from the pool
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset() // Ensure buffer is empty
	return buf
}

// PutBuffer returns a bytes.Buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	// Don't pool buffers that grew too large (>64KB)
	if buf.Cap() > 64*1024 {
		return
	}
	buf.Reset()
	BufferPool.Put(buf)
}

// writeDocument serializes doc using a pooled buffer
// Returns a copy of the bytes since the buffer goes back to the pool
func writeDocument(doc *etree.Document) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if _, err := doc.WriteTo(buf); err != nil {
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
