package stream

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/transform"
)

// Preset bundles a (logical, physical) choice the way the original
// encoder configuration records do: plain values, varint-compressed
// values, run-length varint, or FastPFOR with and without RLE.
type Preset struct {
	Logical1 Logical1
	Logical2 Logical2
	Physical Physical
}

// Plain stores values literally, no logical transform, fixed width physical.
func Plain() Preset { return Preset{Logical1: LogicalNone, Physical: PhysicalNone} }

// Varint stores values with no logical transform, VByte physical.
func Varint() Preset { return Preset{Logical1: LogicalNone, Physical: PhysicalVByte} }

// RleVarint run-length encodes values, VByte physical.
func RleVarint() Preset { return Preset{Logical1: LogicalRle, Physical: PhysicalVByte} }

// FastPFOR stores values with no logical transform, FastPFOR physical.
func FastPFOR() Preset { return Preset{Logical1: LogicalNone, Physical: PhysicalFastPFOR} }

// RleFastPFOR run-length encodes values, FastPFOR physical.
func RleFastPFOR() Preset { return Preset{Logical1: LogicalRle, Physical: PhysicalFastPFOR} }

func (p Preset) encoding() Encoding {
	return Encoding{Logical1: p.Logical1, Logical2: p.Logical2, Physical: p.Physical}
}

// EncodeU32 encodes a plain (non-delta) u32 sequence under preset.
func EncodeU32(stype Type, values []uint32, preset Preset) (Stream, error) {
	physicalIn := values
	runs, numRle := uint32(0), uint32(0)

	if preset.Logical1 == LogicalRle {
		rleFlat, r := transform.EncodeRle32(values)
		physicalIn = rleFlat
		runs, numRle = uint32(r), uint32(len(values)) //nolint:gosec
	}

	payload, err := EncodePhysicalU32(physicalIn, preset.Physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:         stype,
		Encoding:     preset.encoding(),
		NumValues:    uint32(len(values)), //nolint:gosec
		ByteLength:   uint32(len(payload)), //nolint:gosec
		Runs:         runs,
		NumRleValues: numRle,
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodeU32 decodes a Stream produced by EncodeU32 (LogicalNone or LogicalRle).
func DecodeU32(s Stream) ([]uint32, error) {
	enc := s.Meta.Encoding

	switch {
	case enc.Logical1 == LogicalNone && enc.Logical2 == Logical2None:
		return DecodePhysicalU32(s.Payload, enc.Physical, int(s.Meta.NumValues))
	case enc.IsPlainRle():
		raw, err := DecodePhysicalU32(s.Payload, enc.Physical, 2*int(s.Meta.Runs))
		if err != nil {
			return nil, err
		}

		return transform.DecodeRle32(raw, int(s.Meta.Runs))
	default:
		return nil, fmt.Errorf("stream: %w: logical1=%d for u32 stream", errs.ErrUnsupported, enc.Logical1)
	}
}

// EncodeDeltaI32 encodes a signed i32 sequence using Delta, optionally
// composed with Rle (DeltaRle) when preset.Logical2 is Logical2Rle.
func EncodeDeltaI32(stype Type, values []int32, preset Preset) (Stream, error) {
	zigzags := transform.EncodeDelta32(values)

	physicalIn := zigzags
	runs, numRle := uint32(0), uint32(0)

	if preset.Logical2 == Logical2Rle {
		rleFlat, r := transform.EncodeRle32(zigzags)
		physicalIn = rleFlat
		runs, numRle = uint32(r), uint32(len(zigzags)) //nolint:gosec
	}

	payload, err := EncodePhysicalU32(physicalIn, preset.Physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:         stype,
		Encoding:     Encoding{Logical1: LogicalDelta, Logical2: preset.Logical2, Physical: preset.Physical},
		NumValues:    uint32(len(values)), //nolint:gosec
		ByteLength:   uint32(len(payload)), //nolint:gosec
		Runs:         runs,
		NumRleValues: numRle,
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodeDeltaI32 decodes a Stream produced by EncodeDeltaI32.
func DecodeDeltaI32(s Stream) ([]int32, error) {
	enc := s.Meta.Encoding

	if enc.IsDeltaRle() {
		raw, err := DecodePhysicalU32(s.Payload, enc.Physical, 2*int(s.Meta.Runs))
		if err != nil {
			return nil, err
		}

		return transform.DecodeDeltaRle32(raw, int(s.Meta.Runs))
	}

	zigzags, err := DecodePhysicalU32(s.Payload, enc.Physical, int(s.Meta.NumValues))
	if err != nil {
		return nil, err
	}

	return transform.DecodeDelta32(zigzags), nil
}

// EncodeComponentwiseDeltaI32 encodes an interleaved (x, y, ...) sequence.
func EncodeComponentwiseDeltaI32(stype Type, values []int32, physical Physical) (Stream, error) {
	zigzags, err := transform.EncodeComponentwiseDelta32(values)
	if err != nil {
		return Stream{}, err
	}

	payload, err := EncodePhysicalU32(zigzags, physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:       stype,
		Encoding:   Encoding{Logical1: LogicalComponentwiseDelta, Physical: physical},
		NumValues:  uint32(len(values)), //nolint:gosec
		ByteLength: uint32(len(payload)), //nolint:gosec
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodeComponentwiseDeltaI32 decodes a Stream produced by EncodeComponentwiseDeltaI32.
func DecodeComponentwiseDeltaI32(s Stream) ([]int32, error) {
	zigzags, err := DecodePhysicalU32(s.Payload, s.Meta.Encoding.Physical, int(s.Meta.NumValues))
	if err != nil {
		return nil, err
	}

	return transform.DecodeComponentwiseDelta32(zigzags)
}

// EncodeMortonI32 encodes an interleaved (x, y, ...) coordinate sequence as
// Morton codes.
func EncodeMortonI32(stype Type, coords []int32, numBits int, coordinateShift int32, physical Physical) (Stream, error) {
	codes, err := transform.EncodeMorton(coords, numBits, coordinateShift)
	if err != nil {
		return Stream{}, err
	}

	payload, err := EncodePhysicalU32(codes, physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:            stype,
		Encoding:        Encoding{Logical1: LogicalMorton, Physical: physical},
		NumValues:       uint32(len(codes)), //nolint:gosec
		ByteLength:      uint32(len(payload)), //nolint:gosec
		NumBits:         uint32(numBits), //nolint:gosec
		CoordinateShift: uint32(coordinateShift), //nolint:gosec
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodeMortonI32 decodes a Stream produced by EncodeMortonI32.
func DecodeMortonI32(s Stream) ([]int32, error) {
	codes, err := DecodePhysicalU32(s.Payload, s.Meta.Encoding.Physical, int(s.Meta.NumValues))
	if err != nil {
		return nil, err
	}

	return transform.DecodeMorton(codes, int(s.Meta.NumBits), int32(s.Meta.CoordinateShift)), nil //nolint:gosec
}

// EncodeU64 encodes a plain (non-delta) u64 sequence under preset. Only
// PhysicalNone and PhysicalVByte are legal for u64 streams.
func EncodeU64(stype Type, values []uint64, preset Preset) (Stream, error) {
	physicalIn := values
	runs, numRle := uint32(0), uint32(0)

	if preset.Logical1 == LogicalRle {
		rleFlat, r := transform.EncodeRle64(values)
		physicalIn = rleFlat
		runs, numRle = uint32(r), uint32(len(values)) //nolint:gosec
	}

	payload, err := EncodePhysicalU64(physicalIn, preset.Physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:         stype,
		Encoding:     preset.encoding(),
		NumValues:    uint32(len(values)),  //nolint:gosec
		ByteLength:   uint32(len(payload)), //nolint:gosec
		Runs:         runs,
		NumRleValues: numRle,
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodeU64 decodes a Stream produced by EncodeU64.
func DecodeU64(s Stream) ([]uint64, error) {
	enc := s.Meta.Encoding

	switch {
	case enc.Logical1 == LogicalNone && enc.Logical2 == Logical2None:
		return DecodePhysicalU64(s.Payload, enc.Physical, int(s.Meta.NumValues))
	case enc.IsPlainRle():
		raw, err := DecodePhysicalU64(s.Payload, enc.Physical, 2*int(s.Meta.Runs))
		if err != nil {
			return nil, err
		}

		return transform.DecodeRle64(raw, int(s.Meta.Runs))
	default:
		return nil, fmt.Errorf("stream: %w: logical1=%d for u64 stream", errs.ErrUnsupported, enc.Logical1)
	}
}

// EncodeDeltaI64 encodes a signed i64 sequence using Delta, optionally
// composed with Rle (DeltaRle) when preset.Logical2 is Logical2Rle.
func EncodeDeltaI64(stype Type, values []int64, preset Preset) (Stream, error) {
	zigzags := transform.EncodeDelta64(values)

	physicalIn := zigzags
	runs, numRle := uint32(0), uint32(0)

	if preset.Logical2 == Logical2Rle {
		rleFlat, r := transform.EncodeRle64(zigzags)
		physicalIn = rleFlat
		runs, numRle = uint32(r), uint32(len(zigzags)) //nolint:gosec
	}

	payload, err := EncodePhysicalU64(physicalIn, preset.Physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:         stype,
		Encoding:     Encoding{Logical1: LogicalDelta, Logical2: preset.Logical2, Physical: preset.Physical},
		NumValues:    uint32(len(values)),  //nolint:gosec
		ByteLength:   uint32(len(payload)), //nolint:gosec
		Runs:         runs,
		NumRleValues: numRle,
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodeDeltaI64 decodes a Stream produced by EncodeDeltaI64.
func DecodeDeltaI64(s Stream) ([]int64, error) {
	enc := s.Meta.Encoding

	if enc.IsDeltaRle() {
		raw, err := DecodePhysicalU64(s.Payload, enc.Physical, 2*int(s.Meta.Runs))
		if err != nil {
			return nil, err
		}

		return transform.DecodeDeltaRle64(raw, int(s.Meta.Runs))
	}

	zigzags, err := DecodePhysicalU64(s.Payload, enc.Physical, int(s.Meta.NumValues))
	if err != nil {
		return nil, err
	}

	return transform.DecodeDelta64(zigzags), nil
}

// EncodePseudoDecimalF64 encodes floats as a zigzag-interleaved
// (significand, exponent) pair stream: value = significand * 10^-exponent.
// Only PhysicalNone and PhysicalVByte are legal (the pairs are u64-wide).
// NumValues counts logical floats; the payload carries twice that many
// integers.
func EncodePseudoDecimalF64(stype Type, values []float64, physical Physical) (Stream, error) {
	sigs, exps := transform.EncodePseudoDecimal(values)

	pairs := make([]uint64, 0, 2*len(values))
	for i := range sigs {
		pairs = append(pairs, bitpack.ZigzagEncode64(sigs[i]), uint64(bitpack.ZigzagEncode32(exps[i])))
	}

	payload, err := EncodePhysicalU64(pairs, physical)
	if err != nil {
		return Stream{}, err
	}

	meta := Meta{
		Type:       stype,
		Encoding:   Encoding{Logical1: LogicalPseudoDecimal, Physical: physical},
		NumValues:  uint32(len(values)),  //nolint:gosec
		ByteLength: uint32(len(payload)), //nolint:gosec
	}

	return Stream{Meta: meta, Payload: payload}, nil
}

// DecodePseudoDecimalF64 decodes a Stream produced by EncodePseudoDecimalF64.
func DecodePseudoDecimalF64(s Stream) ([]float64, error) {
	pairs, err := DecodePhysicalU64(s.Payload, s.Meta.Encoding.Physical, 2*int(s.Meta.NumValues))
	if err != nil {
		return nil, err
	}

	sigs := make([]int64, s.Meta.NumValues)
	exps := make([]int32, s.Meta.NumValues)

	for i := range sigs {
		sigs[i] = bitpack.ZigzagDecode64(pairs[2*i])
		exps[i] = bitpack.ZigzagDecode32(uint32(pairs[2*i+1])) //nolint:gosec
	}

	return transform.DecodePseudoDecimal(sigs, exps), nil
}

// EncodeBoolean byte-RLE encodes a packed bitmap using the boolean
// convention (no explicit runs/num_rle_values on the wire).
func EncodeBoolean(stype Type, bits []bool) Stream {
	packed := bitpack.PackBitmap(bits)
	payload := bitpack.EncodeByteRLE(packed)

	meta := Meta{
		Type:       stype,
		Encoding:   Encoding{Logical1: LogicalRle, Physical: PhysicalNone},
		NumValues:  uint32(len(bits)), //nolint:gosec
		ByteLength: uint32(len(payload)), //nolint:gosec
		Boolean:    true,
	}

	return Stream{Meta: meta, Payload: payload}
}

// DecodeBoolean reverses EncodeBoolean.
func DecodeBoolean(s Stream) ([]bool, error) {
	packedLen := bitpack.BitmapByteLen(int(s.Meta.NumValues))

	packed, err := bitpack.DecodeByteRLE(s.Payload, packedLen)
	if err != nil {
		return nil, err
	}

	return bitpack.UnpackBitmap(packed, int(s.Meta.NumValues)), nil
}
