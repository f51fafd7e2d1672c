package compress

import (
	"fmt"

	"github.com/arloliu/fitmatch/format"
)

// Compressor compresses a snapshot payload.
//
// Memory contract shared by all implementations:
//   - the input slice is never modified
//   - the returned slice is owned by the caller (except NoOpCompressor,
//     which returns the input unchanged)
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
// Implementations validate the stream and fail on corrupted input.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions; every codec in this package implements it.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given compression type.
func NewCodec(typ format.CompressionType) (Codec, error) {
	switch typ {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unsupported compression type %d", typ)
	}
}
