package compress

// ZstdCompressor provides Zstandard compression, the snapshot default.
//
// Zstd gives the best ratio of the available codecs on float64 payloads and
// decompresses fast enough that snapshot reload stays I/O-bound. The concrete
// implementation is picked at build time (see zstd_cgo.go / zstd_pure.go);
// both emit standard zstd frames that either side can read.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
