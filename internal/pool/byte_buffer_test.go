package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte{1, 2, 3})
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBufferGrows(t *testing.T) {
	bb := NewByteBuffer(2)

	data := make([]byte, 128)
	bb.MustWrite(data)

	assert.Equal(t, 128, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 128)
}

func TestSnapshotBufferPoolRoundTrip(t *testing.T) {
	bb := GetSnapshotBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len(), "pooled buffer must come back reset")

	bb.MustWrite([]byte("payload"))
	PutSnapshotBuffer(bb)

	again := GetSnapshotBuffer()
	assert.Equal(t, 0, again.Len())
	PutSnapshotBuffer(again)
}

func TestPutSnapshotBufferDropsOversized(t *testing.T) {
	huge := NewByteBuffer(SnapshotBufferMaxThreshold + 1)
	// Must not panic; the buffer is simply discarded.
	PutSnapshotBuffer(huge)
	PutSnapshotBuffer(nil)
}
