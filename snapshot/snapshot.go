package snapshot

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/arloliu/fitmatch/compress"
	"github.com/arloliu/fitmatch/endian"
	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/format"
	"github.com/arloliu/fitmatch/frame"
	"github.com/arloliu/fitmatch/internal/options"
	"github.com/arloliu/fitmatch/internal/pool"
)

// Version is the snapshot format version this build writes and reads.
const Version uint8 = 0x1

const (
	flagCodecMask = 0x0f
	flagBigEndian = 0x10
)

var magic = [4]byte{'F', 'M', 'S', '1'}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

type config struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option is a functional option for Write.
type Option = options.Option[*config]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(typ format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if !typ.Valid() {
			return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCompression, uint8(typ))
		}
		cfg.compression = typ

		return nil
	})
}

// WithBigEndian writes all integers and float bits big-endian. Readers pick
// the order up from the flags byte, so snapshots stay portable either way.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.bigEndian = true
	})
}

// Write encodes f as a snapshot.
//
// The whole message is assembled in a pooled buffer and handed to w in a
// single Write call.
func Write(w io.Writer, f *frame.Frame, opts ...Option) error {
	if f == nil || f.Grid() == nil {
		return fmt.Errorf("snapshot: %w", errs.ErrEmptyFrame)
	}

	cfg := &config{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if f.Width() > math.MaxUint16 {
		return fmt.Errorf("snapshot: %d columns exceed the format limit", f.Width())
	}
	for _, name := range f.Names() {
		if len(name) > math.MaxUint16 {
			return fmt.Errorf("snapshot: column name %q exceeds the format limit", name[:32]+"...")
		}
	}

	engine := endian.GetLittleEndianEngine()
	if cfg.bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	raw := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(raw)

	grid := f.Grid()
	for i := 0; i < grid.Len(); i++ {
		raw.B = engine.AppendUint64(raw.B, math.Float64bits(grid.At(i)))
	}
	for j := 0; j < f.Width(); j++ {
		for _, v := range f.ColumnAt(j).Values {
			raw.B = engine.AppendUint64(raw.B, math.Float64bits(v))
		}
	}

	codec, err := compress.NewCodec(cfg.compression)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	payload, err := codec.Compress(raw.Bytes())
	if err != nil {
		return fmt.Errorf("snapshot: compress payload: %w", err)
	}

	flags := uint8(cfg.compression) & flagCodecMask
	if cfg.bigEndian {
		flags |= flagBigEndian
	}

	msg := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(msg)

	msg.MustWrite(magic[:])
	msg.B = append(msg.B, Version, flags)
	msg.B = engine.AppendUint16(msg.B, uint16(f.Width()))
	msg.B = engine.AppendUint32(msg.B, uint32(f.Len()))
	msg.B = engine.AppendUint64(msg.B, grid.Fingerprint())
	for _, name := range f.Names() {
		msg.B = engine.AppendUint16(msg.B, uint16(len(name)))
		msg.MustWrite([]byte(name))
	}
	msg.B = engine.AppendUint32(msg.B, uint32(len(payload)))
	msg.MustWrite(payload)
	msg.B = engine.AppendUint32(msg.B, crc32.Checksum(payload, castagnoli))

	if _, err := w.Write(msg.Bytes()); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	return nil
}

// WriteFile writes a snapshot of f to path.
func WriteFile(path string, f *frame.Frame, opts ...Option) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(file, f, opts...); err != nil {
		file.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	return file.Close()
}

// Read decodes a snapshot back into a frame.
//
// Returns errs.ErrInvalidMagic, errs.ErrUnsupportedVersion,
// errs.ErrUnknownCompression, errs.ErrTruncatedSnapshot,
// errs.ErrChecksumMismatch or errs.ErrFingerprintMismatch depending on
// which validation fails.
func Read(r io.Reader) (*frame.Frame, error) {
	hdr, engine, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, truncated(err)
	}
	payload := make([]byte, engine.Uint32(sizeBuf[:]))
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, truncated(err)
	}
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, truncated(err)
	}
	if crc32.Checksum(payload, castagnoli) != engine.Uint32(sizeBuf[:]) {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.NewCodec(hdr.compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress payload: %w", err)
	}

	want := (len(hdr.names) + 1) * hdr.rows * 8
	if len(raw) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", errs.ErrTruncatedSnapshot, len(raw), want)
	}

	xs := make([]float64, hdr.rows)
	off := 0
	for i := range xs {
		xs[i] = math.Float64frombits(engine.Uint64(raw[off:]))
		off += 8
	}
	grid, err := frame.NewGrid(xs)
	if err != nil {
		return nil, fmt.Errorf("snapshot grid: %w", err)
	}
	if grid.Fingerprint() != hdr.fingerprint {
		return nil, errs.ErrFingerprintMismatch
	}

	cols := make([]frame.Column, len(hdr.names))
	for j := range cols {
		values := make([]float64, hdr.rows)
		for i := range values {
			values[i] = math.Float64frombits(engine.Uint64(raw[off:]))
			off += 8
		}
		cols[j] = frame.Column{Name: hdr.names[j], Values: values}
	}

	return frame.New(grid, cols)
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return f, nil
}

// Meta describes a snapshot without decoding its payload.
type Meta struct {
	Version      uint8
	Compression  format.CompressionType
	BigEndian    bool
	Columns      int
	Rows         int
	Fingerprint  uint64
	Names        []string
	PayloadBytes int
}

// ReadMeta parses the snapshot header and name table, stopping before the
// payload. It validates magic, version and codec id but not the checksum.
func ReadMeta(r io.Reader) (*Meta, error) {
	hdr, engine, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, truncated(err)
	}

	return &Meta{
		Version:      hdr.version,
		Compression:  hdr.compression,
		BigEndian:    hdr.bigEndian,
		Columns:      len(hdr.names),
		Rows:         hdr.rows,
		Fingerprint:  hdr.fingerprint,
		Names:        hdr.names,
		PayloadBytes: int(engine.Uint32(sizeBuf[:])),
	}, nil
}

// ReadMetaFile reads snapshot metadata from path.
func ReadMetaFile(path string) (*Meta, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	meta, err := ReadMeta(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return meta, nil
}

type header struct {
	version     uint8
	compression format.CompressionType
	bigEndian   bool
	rows        int
	fingerprint uint64
	names       []string
}

// readHeader consumes magic through name table and returns the byte-order
// engine the rest of the message uses.
func readHeader(r io.Reader) (*header, endian.EndianEngine, error) {
	var mag [4]byte
	if _, err := io.ReadFull(r, mag[:]); err != nil {
		return nil, nil, truncated(err)
	}
	if !bytes.Equal(mag[:], magic[:]) {
		return nil, nil, errs.ErrInvalidMagic
	}

	var fixed [16]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, nil, truncated(err)
	}

	hdr := &header{version: fixed[0]}
	if hdr.version != Version {
		return nil, nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, hdr.version)
	}

	flags := fixed[1]
	hdr.compression = format.CompressionType(flags & flagCodecMask)
	if !hdr.compression.Valid() {
		return nil, nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCompression, flags&flagCodecMask)
	}
	hdr.bigEndian = flags&flagBigEndian != 0

	engine := endian.GetLittleEndianEngine()
	if hdr.bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	columns := int(engine.Uint16(fixed[2:4]))
	hdr.rows = int(engine.Uint32(fixed[4:8]))
	hdr.fingerprint = engine.Uint64(fixed[8:16])

	hdr.names = make([]string, columns)
	var lenBuf [2]byte
	for i := range hdr.names {
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, nil, truncated(err)
		}
		name := make([]byte, engine.Uint16(lenBuf[:]))
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, nil, truncated(err)
		}
		hdr.names[i] = string(name)
	}

	return hdr, engine, nil
}

func truncated(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrTruncatedSnapshot, err)
}
