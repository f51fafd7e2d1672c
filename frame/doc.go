// Package frame provides the tabular data model shared by the fitmatch
// pipeline: a Grid of independent-variable values and Frames of named series
// sampled on it.
//
// # Grid
//
// A Grid is an ordered sequence of distinct, finite float64 values — the
// x-axis every training signal and candidate function is sampled on. A Grid
// carries an index for exact-match lookups and an xxHash64 fingerprint over
// its raw value bits, used to detect mismatched tables cheaply before any
// numeric work starts.
//
// # Frame
//
// A Frame is a Grid plus one or more named Columns, each exactly as long as
// the grid. Construction validates the shape completely; afterwards both Grid
// and Frame are immutable. The fitting core consumes Frames read-only and
// never mutates them.
//
// Column accessors return views of internal storage for performance; callers
// must treat them as read-only.
package frame
