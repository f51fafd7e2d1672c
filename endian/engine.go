// Package endian provides byte-order utilities for snapshot encoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine interface, so encoders can both read fixed-width
// integers and append them to growing buffers through one value.
//
// Snapshots default to little-endian; GetBigEndianEngine exists for callers
// that need to interoperate with big-endian consumers.
package endian

import "encoding/binary"

// EndianEngine is the combined byte-order interface used by snapshot
// encoding and decoding. binary.LittleEndian and binary.BigEndian both
// satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the fitmatch
// default.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
