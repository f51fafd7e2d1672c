// Package snapshot persists a frame.Frame to a compact binary format for
// fast reload, skipping CSV parsing and grid validation cost on repeated
// runs over the same tables.
//
// Wire layout (integers in the byte order selected by the flags byte,
// little-endian unless the big-endian flag is set):
//
//	┌───────────────┬─────────┬───────────────────────────────────────────┐
//	│ Field         │ Size    │ Description                               │
//	├───────────────┼─────────┼───────────────────────────────────────────┤
//	│ magic         │ 4 bytes │ "FMS1"                                    │
//	│ version       │ u8      │ format version, currently 1               │
//	│ flags         │ u8      │ bits 0-3 codec id, bit 4 big-endian       │
//	│ columns       │ u16     │ series count, x excluded                  │
//	│ rows          │ u32     │ grid length                               │
//	│ fingerprint   │ u64     │ xxHash64 of the grid values               │
//	│ name table    │ varies  │ per column: u16 length + name bytes       │
//	│ payload size  │ u32     │ compressed payload length                 │
//	│ payload       │ varies  │ codec-compressed f64 bits: grid values    │
//	│               │         │ first, then each column in order          │
//	│ checksum      │ u32     │ CRC-32C of the compressed payload         │
//	└───────────────┴─────────┴───────────────────────────────────────────┘
//
// Read verifies magic, version, codec id, checksum and grid fingerprint
// before returning a frame, so a corrupted or mismatched snapshot fails with
// a specific errs sentinel instead of producing silent garbage.
package snapshot
