// Package bitpack implements the bit-level primitives streams are built
// from: unsigned varint, zigzag, byte-RLE, packed bitmaps, and the
// FastPFOR-composite physical encoding. These are pure, allocation-light
// functions operating directly on byte slices; none of them perform I/O.
package bitpack

import (
	"encoding/binary"
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// AppendUvarint appends the little-endian 7-bits-per-byte varint encoding
// of v to dst and returns the extended slice.
func AppendUvarint(dst []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)

	return append(dst, tmp[:n]...)
}

// ReadUvarint decodes a varint from the front of data, returning the value
// and the number of bytes consumed. Returns ErrTruncated if data ends
// before the continuation chain terminates.
func ReadUvarint(data []byte) (uint64, int, error) {
	v, n := binary.Uvarint(data)
	if n == 0 {
		return 0, 0, fmt.Errorf("bitpack: %w: varint ran past end of input", errs.ErrTruncated)
	}

	if n < 0 {
		return 0, 0, fmt.Errorf("bitpack: %w: varint overflows 64 bits", errs.ErrIntegerOverflow)
	}

	return v, n, nil
}

// ZigzagEncode32 maps a signed 32-bit value to an unsigned one so small
// magnitudes (positive or negative) encode to small varints.
func ZigzagEncode32(v int32) uint32 {
	return (uint32(v) << 1) ^ uint32(v>>31)
}

// ZigzagDecode32 inverts ZigzagEncode32.
func ZigzagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// ZigzagEncode64 maps a signed 64-bit value to an unsigned one.
func ZigzagEncode64(v int64) uint64 {
	return (uint64(v) << 1) ^ uint64(v>>63)
}

// ZigzagDecode64 inverts ZigzagEncode64.
func ZigzagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
