package pool

import "sync"

const (
	// SnapshotBufferDefaultSize is the initial capacity of pooled snapshot
	// buffers. A 400-row, 50-column frame needs ~160KiB of payload, but most
	// frames are far smaller; buffers grow on demand.
	SnapshotBufferDefaultSize = 64 * 1024
	// SnapshotBufferMaxThreshold is the largest buffer the pool retains.
	// Oversized buffers are dropped so one huge frame does not pin memory.
	SnapshotBufferMaxThreshold = 4 * 1024 * 1024
)

// ByteBuffer is a growable byte slice that can be pooled and reused across
// snapshot encodings.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes written so far.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the buffer capacity.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer while keeping the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

var snapshotBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(SnapshotBufferDefaultSize)
	},
}

// GetSnapshotBuffer returns a reset ByteBuffer from the pool.
func GetSnapshotBuffer() *ByteBuffer {
	bb := snapshotBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutSnapshotBuffer returns a buffer to the pool. Buffers that grew beyond
// SnapshotBufferMaxThreshold are dropped instead of retained.
func PutSnapshotBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > SnapshotBufferMaxThreshold {
		return
	}
	snapshotBufferPool.Put(bb)
}
