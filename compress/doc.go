// Package compress provides the compression codecs used by frame snapshots.
//
// A snapshot payload is a single contiguous block of IEEE-754 float64 bits
// (the grid followed by every column), which compresses well: neighbouring
// samples of a smooth function share exponent and high mantissa bytes.
//
// Four codecs are available, selected by format.CompressionType:
//
//   - None: pass-through, for debugging and tiny frames
//   - Zstd: best ratio, the snapshot default
//   - S2:   fastest, moderate ratio
//   - LZ4:  fast block compression, small working set
//
// The Zstd codec has two implementations chosen at build time: valyala/gozstd
// when cgo is available, and the pure-Go klauspost/compress/zstd otherwise.
// Both produce interchangeable streams.
package compress
