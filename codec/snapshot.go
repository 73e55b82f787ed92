package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/densekit/internal/hash"
)

// Compression selects the block compression applied to snapshot payloads.
type Compression uint8

const (
	// CompressionNone stores the payload verbatim.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, light ratio).
	CompressionLZ4 Compression = 1
	// CompressionS2 uses S2 block compression (snappy-compatible family,
	// better ratio at comparable speed).
	CompressionS2 Compression = 2
)

var (
	// ErrBadMagic is returned when the snapshot prefix is not recognized.
	ErrBadMagic = errors.New("codec: bad snapshot magic")
	// ErrChecksum is returned when the payload checksum does not match.
	ErrChecksum = errors.New("codec: snapshot checksum mismatch")
	// ErrTruncated is returned when the snapshot ends before its declared
	// payload.
	ErrTruncated = errors.New("codec: truncated snapshot")
)

// snapshot frame, little endian:
//
//	[4]byte magic "dks1"
//	uint8   compression
//	uint8   codec name length, followed by the name bytes
//	uint32  uncompressed payload size
//	uint32  stored payload size
//	[...]   payload (compressed per header)
//	uint32  CRC32-Castagnoli of the stored payload
var snapshotMagic = [4]byte{'d', 'k', 's', '1'}

const fixedHeaderSize = 4 + 1 + 1 + 4 + 4

// Snapshotter seals container payloads into self-describing, checksummed
// byte frames and opens them again.
type Snapshotter struct {
	compression Compression
	codec       Codec
	logger      *slog.Logger
}

// SnapshotOption configures a Snapshotter.
type SnapshotOption func(*Snapshotter)

// WithCompression selects the payload compression.
func WithCompression(c Compression) SnapshotOption {
	return func(s *Snapshotter) { s.compression = c }
}

// WithCodec selects the value codec recorded in the frame header.
func WithCodec(c Codec) SnapshotOption {
	return func(s *Snapshotter) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger attaches a structured logger; decode anomalies are reported
// through it.
func WithLogger(l *slog.Logger) SnapshotOption {
	return func(s *Snapshotter) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSnapshotter creates a Snapshotter. The default is the Default codec,
// no compression and a discarded log.
func NewSnapshotter(opts ...SnapshotOption) *Snapshotter {
	s := &Snapshotter{
		compression: CompressionNone,
		codec:       Default,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codec returns the value codec recorded in sealed frames.
func (s *Snapshotter) Codec() Codec { return s.codec }

// Seal frames payload with the configured compression and a checksum.
func (s *Snapshotter) Seal(payload []byte) ([]byte, error) {
	stored := payload
	compression := s.compression

	switch s.compression {
	case CompressionNone:
	case CompressionS2:
		stored = s2.Encode(nil, payload)
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("codec: lz4 compress: %w", err)
		}
		if n == 0 {
			// Incompressible: fall back to a verbatim frame.
			compression = CompressionNone
		} else {
			stored = buf[:n]
		}
	default:
		return nil, fmt.Errorf("codec: unknown compression %d", s.compression)
	}

	name := s.codec.Name()
	out := make([]byte, 0, fixedHeaderSize+len(name)+len(stored)+4)
	out = append(out, snapshotMagic[:]...)
	out = append(out, byte(compression), byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(stored)))
	out = append(out, stored...)
	out = binary.LittleEndian.AppendUint32(out, hash.CRC32C(stored))
	return out, nil
}

// Open verifies and decompresses a sealed frame, returning the payload and
// the codec name recorded at seal time.
func (s *Snapshotter) Open(data []byte) ([]byte, string, error) {
	if len(data) < fixedHeaderSize {
		return nil, "", ErrTruncated
	}
	if [4]byte(data[:4]) != snapshotMagic {
		return nil, "", ErrBadMagic
	}
	compression := Compression(data[4])
	nameLen := int(data[5])
	if len(data) < fixedHeaderSize+nameLen {
		return nil, "", ErrTruncated
	}
	name := string(data[6 : 6+nameLen])
	rest := data[6+nameLen:]

	uncompressedSize := binary.LittleEndian.Uint32(rest[0:4])
	storedSize := binary.LittleEndian.Uint32(rest[4:8])
	rest = rest[8:]
	if uint64(len(rest)) < uint64(storedSize)+4 {
		return nil, "", ErrTruncated
	}
	stored := rest[:storedSize]

	sum := binary.LittleEndian.Uint32(rest[storedSize : storedSize+4])
	if got := hash.CRC32C(stored); got != sum {
		s.logger.Warn("snapshot checksum mismatch",
			"expected", sum,
			"actual", got,
		)
		return nil, "", ErrChecksum
	}

	var payload []byte
	switch compression {
	case CompressionNone:
		payload = stored
	case CompressionS2:
		decoded, err := s2.Decode(nil, stored)
		if err != nil {
			return nil, "", fmt.Errorf("codec: s2 decompress: %w", err)
		}
		payload = decoded
	case CompressionLZ4:
		decoded := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(stored, decoded)
		if err != nil {
			return nil, "", fmt.Errorf("codec: lz4 decompress: %w", err)
		}
		payload = decoded[:n]
	default:
		return nil, "", fmt.Errorf("codec: unknown compression %d", compression)
	}

	if uint32(len(payload)) != uncompressedSize {
		return nil, "", fmt.Errorf("codec: payload size mismatch: header %d, got %d", uncompressedSize, len(payload))
	}

	s.logger.Debug("snapshot opened",
		"codec", name,
		"compression", uint8(compression),
		"payload_bytes", len(payload),
	)
	return payload, name, nil
}
