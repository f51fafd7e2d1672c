// Package errs defines the sentinel errors shared across fitmatch packages.
//
// All errors are compared with errors.Is; call sites add context by wrapping
// them with fmt.Errorf("...: %w", err).
package errs

import "errors"

// Grid and frame construction errors.
var (
	// ErrEmptyGrid indicates a grid with zero values.
	ErrEmptyGrid = errors.New("grid contains no values")
	// ErrNonFiniteGridValue indicates a NaN or infinite grid value.
	ErrNonFiniteGridValue = errors.New("grid value is not finite")
	// ErrDuplicateGridValue indicates two identical values in one grid.
	ErrDuplicateGridValue = errors.New("duplicate grid value")
	// ErrNoColumns indicates a frame constructed without any column.
	ErrNoColumns = errors.New("frame contains no columns")
	// ErrEmptyColumnName indicates a column with an empty name.
	ErrEmptyColumnName = errors.New("column name is empty")
	// ErrDuplicateColumn indicates two columns sharing one name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrColumnLength indicates a column whose length differs from the grid.
	ErrColumnLength = errors.New("column length does not match grid")
)

// Fit errors.
var (
	// ErrEmptyFrame indicates a nil frame or a frame without data where one
	// is required.
	ErrEmptyFrame = errors.New("frame is nil or empty")
	// ErrGridMismatch indicates training and candidate tables sampled on
	// different grids.
	ErrGridMismatch = errors.New("grids do not match")
	// ErrUnknownCandidate indicates a fit assignment referencing a candidate
	// column absent from the candidate frame.
	ErrUnknownCandidate = errors.New("unknown candidate column")
	// ErrUnknownSignal indicates a result referencing a training signal absent
	// from the fit assignments.
	ErrUnknownSignal = errors.New("unknown training signal")
)

// CSV ingestion errors.
var (
	// ErrMissingHeader indicates CSV input without a header row.
	ErrMissingHeader = errors.New("missing csv header")
	// ErrBadHeader indicates a CSV header whose first column is not "x" or
	// whose shape does not match the expected table.
	ErrBadHeader = errors.New("malformed csv header")
	// ErrBadCell indicates a CSV cell that does not parse as a float.
	ErrBadCell = errors.New("malformed csv cell")
)

// Snapshot errors.
var (
	// ErrInvalidMagic indicates data that does not start with the snapshot
	// magic number.
	ErrInvalidMagic = errors.New("invalid snapshot magic")
	// ErrUnsupportedVersion indicates a snapshot version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrUnknownCompression indicates an unrecognized compression type id.
	ErrUnknownCompression = errors.New("unknown compression type")
	// ErrChecksumMismatch indicates payload corruption detected by CRC.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrFingerprintMismatch indicates a decoded grid whose fingerprint does
	// not match the snapshot header.
	ErrFingerprintMismatch = errors.New("snapshot grid fingerprint mismatch")
	// ErrTruncatedSnapshot indicates a snapshot shorter than its header claims.
	ErrTruncatedSnapshot = errors.New("truncated snapshot")
)

// Store errors.
var (
	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("store is closed")
	// ErrEmptyTable indicates a load from a table with no rows.
	ErrEmptyTable = errors.New("table contains no rows")
)
