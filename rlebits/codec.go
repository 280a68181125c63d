package rlebits

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/bitkit"
)

// Packed codec format (version 1, little-endian):
//
//	[magic "BKR1"][uint16 version][uint16 reserved][uint32 runCount]
//	[uint64 packed_0]...[uint64 packed_{n-1}]
var packedMagic = [4]byte{'B', 'K', 'R', '1'}

const (
	packedCodecVersion = uint16(1)
	packedHeaderSize   = 4 + 2 + 2 + 4
)

// WriteTo writes the packed run words.
func (r *Runs) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, packedHeaderSize+8*r.used)
	copy(buf[0:4], packedMagic[:])
	binary.LittleEndian.PutUint16(buf[4:6], packedCodecVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(r.used))
	for i := 0; i < r.used; i++ {
		binary.LittleEndian.PutUint64(buf[packedHeaderSize+8*i:], r.data[i])
	}
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("rlebits: failed to write packed runs: %w", err)
	}
	return int64(n), nil
}

// ReadFrom decodes packed run words and returns a fully constructed Runs.
// The canonical-form invariant is validated; corrupted data is rejected,
// never coerced.
func ReadFrom(rd io.Reader) (*Runs, error) {
	var hdr [packedHeaderSize]byte
	if _, err := io.ReadFull(rd, hdr[:]); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short header", err)
	}
	if [4]byte(hdr[0:4]) != packedMagic {
		return nil, bitkit.NewErrSnapshotFormat("invalid magic", nil)
	}
	if version := binary.LittleEndian.Uint16(hdr[4:6]); version != packedCodecVersion {
		return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("unsupported version %d", version), nil)
	}
	count := int(binary.LittleEndian.Uint32(hdr[8:12]))
	if count == 0 {
		return Empty, nil
	}

	buf := make([]byte, 8*count)
	if _, err := io.ReadFull(rd, buf); err != nil {
		return nil, bitkit.NewErrSnapshotFormat("short run data", err)
	}

	out := &Runs{data: make([]uint64, count), used: count}
	var prevEnd int64 = -2
	for i := 0; i < count; i++ {
		word := binary.LittleEndian.Uint64(buf[8*i:])
		start, endIncl := uint32(word), uint32(word>>32)
		if int64(endIncl) < int64(start) {
			return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("run %d has end %d before start %d", i, endIncl, start), nil)
		}
		// Non-overlap and non-abut require a gap of at least one bit.
		if int64(start) <= prevEnd+1 {
			return nil, bitkit.NewErrSnapshotFormat(fmt.Sprintf("run %d violates canonical order", i), nil)
		}
		out.data[i] = word
		out.card += int64(endIncl) - int64(start) + 1
		prevEnd = int64(endIncl)
	}
	return out, nil
}
