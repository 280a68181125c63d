package atomicbits

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/bitkit"
)

// Raw snapshot format (version 1, little-endian):
//
//	[byte version][int32 capacity][int64 word_0]...[int64 word_{n-1}]
//
// where n = ceil(capacity/64). Deserialization rejects any other version and
// any non-positive capacity.
const rawSnapshotVersion = byte(1)

const rawHeaderSize = 1 + 4

// WriteTo writes the raw binary snapshot of the vector.
func (v *Vector) WriteTo(w io.Writer) (int64, error) {
	if v.capacity > math.MaxInt32 {
		return 0, fmt.Errorf("atomicbits: snapshot capacity: %w", bitkit.NewErrDomainExceeded(v.capacity, math.MaxInt32))
	}
	buf := make([]byte, rawHeaderSize+8*len(v.words))
	buf[0] = rawSnapshotVersion
	binary.LittleEndian.PutUint32(buf[1:rawHeaderSize], uint32(v.capacity))
	for i := range v.words {
		binary.LittleEndian.PutUint64(buf[rawHeaderSize+8*i:], v.words[i].Load())
	}
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("atomicbits: failed to write snapshot: %w", err)
	}
	return int64(n), nil
}

// ReadFrom decodes a raw snapshot and returns a fully constructed Vector.
// A partially decoded instance is never exposed.
func ReadFrom(r io.Reader) (*Vector, error) {
	var hdr [rawHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short header", err)
	}
	if hdr[0] != rawSnapshotVersion {
		return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("unsupported version %d", hdr[0]), nil)
	}
	capacity := int32(binary.LittleEndian.Uint32(hdr[1:rawHeaderSize]))
	if capacity <= 0 {
		return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("non-positive capacity %d", capacity), nil)
	}

	v := newVector(int64(capacity))
	buf := make([]byte, 8*len(v.words))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short word data", err)
	}
	for i := range v.words {
		w := binary.LittleEndian.Uint64(buf[8*i:])
		if i == len(v.words)-1 {
			w &= v.lastMask
		}
		v.words[i].Store(w)
	}
	return v, nil
}

// CompressionType selects the compression applied to a snapshot container.
type CompressionType uint8

const (
	// CompressionNone stores the raw snapshot unmodified.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

var snapshotMagic = [4]byte{'B', 'K', 'S', '1'}

const (
	containerVersion    = uint16(1)
	containerHeaderSize = 8 // magic + version + compression type + reserved
	blockHeaderSize     = 8 // uncompressed size + compressed size
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// SnapshotOptions configures WriteSnapshot.
type SnapshotOptions struct {
	Compression CompressionType
}

// SnapshotOption mutates SnapshotOptions.
type SnapshotOption func(*SnapshotOptions)

// WithCompression selects the container compression.
func WithCompression(t CompressionType) SnapshotOption {
	return func(o *SnapshotOptions) { o.Compression = t }
}

// WriteSnapshot writes a self-describing snapshot container:
//
//	[magic "BKS1"][uint16 version][byte compression][byte reserved]
//	[uint32 uncompressedSize][uint32 compressedSize][payload]
//
// compressedSize == 0 marks an uncompressed payload. The payload is the raw
// snapshot format of WriteTo.
func WriteSnapshot(w io.Writer, v *Vector, opts ...SnapshotOption) (int64, error) {
	options := SnapshotOptions{Compression: CompressionNone}
	for _, opt := range opts {
		opt(&options)
	}

	var raw bytes.Buffer
	if _, err := v.WriteTo(&raw); err != nil {
		return 0, err
	}

	payload, compressedSize, err := compressPayload(raw.Bytes(), options.Compression)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 0, containerHeaderSize+blockHeaderSize+len(payload))
	buf = append(buf, snapshotMagic[:]...)
	var fixed [4]byte
	binary.LittleEndian.PutUint16(fixed[0:2], containerVersion)
	fixed[2] = byte(options.Compression)
	// fixed[3] reserved
	buf = append(buf, fixed[:]...)

	var block [blockHeaderSize]byte
	binary.LittleEndian.PutUint32(block[0:4], uint32(raw.Len()))
	binary.LittleEndian.PutUint32(block[4:8], compressedSize)
	buf = append(buf, block[:]...)
	buf = append(buf, payload...)

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("atomicbits: failed to write snapshot container: %w", err)
	}
	return int64(n), nil
}

// compressPayload compresses data, falling back to storing it uncompressed
// when compression does not help. compressedSize 0 means uncompressed.
func compressPayload(data []byte, t CompressionType) ([]byte, uint32, error) {
	switch t {
	case CompressionNone:
		return data, 0, nil
	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		compressed := make([]byte, bound)
		n, err := lz4.CompressBlock(data, compressed, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("atomicbits: lz4 compression failed: %w", err)
		}
		if n == 0 || n >= len(data) {
			return data, 0, nil // incompressible
		}
		return compressed[:n], uint32(n), nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		compressed := enc.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return data, 0, nil
		}
		return compressed, uint32(len(compressed)), nil
	default:
		return nil, 0, fmt.Errorf("atomicbits: unknown compression type %d", t)
	}
}

// ReadSnapshot decodes a snapshot container written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Vector, error) {
	var hdr [containerHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short container header", err)
	}
	if [4]byte(hdr[0:4]) != snapshotMagic {
		return nil, bitkit.NewErrSnapshotFormat("invalid container magic", nil)
	}
	if version := binary.LittleEndian.Uint16(hdr[4:6]); version != containerVersion {
		return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("unsupported container version %d", version), nil)
	}
	compression := CompressionType(hdr[6])

	var block [blockHeaderSize]byte
	if _, err := io.ReadFull(r, block[:]); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short block header", err)
	}
	uncompressedSize := binary.LittleEndian.Uint32(block[0:4])
	compressedSize := binary.LittleEndian.Uint32(block[4:8])

	payloadSize := compressedSize
	if payloadSize == 0 {
		payloadSize = uncompressedSize
	}
	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short payload", err)
	}

	raw := payload
	if compressedSize != 0 {
		var err error
		raw, err = decompressPayload(payload, int(uncompressedSize), compression)
		if err != nil {
			return nil, err
		}
	}
	return ReadFrom(bytes.NewReader(raw))
}

func decompressPayload(payload []byte, uncompressedSize int, t CompressionType) ([]byte, error) {
	switch t {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, bitkit.NewErrSnapshotFormat("lz4 decompression failed", err)
		}
		if n != uncompressedSize {
			return nil, bitkit.NewErrSnapshotFormat("decompressed size mismatch", nil)
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, bitkit.NewErrSnapshotFormat("zstd decompression failed", err)
		}
		if len(out) != uncompressedSize {
			return nil, bitkit.NewErrSnapshotFormat("decompressed size mismatch", nil)
		}
		return out, nil
	default:
		return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("unknown compression type %d", t), nil)
	}
}
