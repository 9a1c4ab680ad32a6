// Package endian provides byte order utilities for binary encoding and
// decoding of the MLT wire format.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a unified EndianEngine interface. The
// wire format pins specific fields to specific byte orders (spec.md §9
// "Endian surprises"):
//
//   - FastPFOR composite payloads: big-endian u32 words
//   - varint fields (num_values, byte_length, logical params): byte-order
//     agnostic by construction (LEB128 is read one byte at a time)
//   - f32 samples (vertex coordinates, scalar float columns): little-endian
//
// # Basic usage
//
//	engine := endian.LittleEndian()
//	engine.PutUint32(buf, value)
//
// # Thread safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations. Satisfied directly by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndian returns the engine used for vertex coordinates and f32
// samples, the default for every field the wire format does not otherwise
// pin to big-endian.
func LittleEndian() EndianEngine { return binary.LittleEndian }

// BigEndian returns the engine FastPFOR composite streams use for their u32
// words.
func BigEndian() EndianEngine { return binary.BigEndian }

// CheckEndianness uses a fixed integer value to determine the host's native
// byte order. Used only by unsafe zero-copy decode paths that must know
// whether a direct memory reinterpretation matches the wire's declared
// order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// SameAsNative reports whether engine matches the host's native byte order,
// allowing zero-copy decode paths to skip byte swapping.
func SameAsNative(engine EndianEngine) bool {
	return engine == CheckEndianness()
}
