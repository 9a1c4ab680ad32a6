package column

import (
	"fmt"
	"math"

	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/stream"
)

// ScalarEncoder selects the presence policy and logical/physical preset a
// scalar column is encoded with (spec.md §6 "Encoder configuration").
type ScalarEncoder struct {
	Optional bool
	Preset   stream.Preset

	// PseudoDecimal stores F64 values as (significand, exponent) pairs
	// instead of demoted f32 bit patterns, preserving near-integer
	// decimals exactly. Ignored for non-float element types.
	PseudoDecimal bool
}

// Plain is the simplest scalar preset: non-optional, no logical transform,
// fixed-width physical.
func Plain() ScalarEncoder { return ScalarEncoder{Preset: stream.Plain()} }

// DecodedBool is a decoded Bool/OptBool column: Present marks which
// indices in Values actually have a value (nil when the column is
// non-optional, i.e. every index is present).
type DecodedBool struct {
	Values  []bool
	Present []bool
}

// EncodeBool serializes a Bool/OptBool column. When enc.Optional, present
// must be non-nil and values holds only the present entries (len(values)
// == number of true entries in present).
func EncodeBool(name string, values []bool, present []bool, enc ScalarEncoder) []byte {
	typ := Bool
	if enc.Optional {
		typ = OptBool
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)
	dst = append(dst, stream.EncodeBoolean(stream.DataType(stream.DictionaryNone), values).Bytes()...)

	return dst
}

// DecodeBoolBody parses a Bool/OptBool column body (after the column_type
// and name have already been consumed) from the front of data.
func DecodeBoolBody(data []byte, optional bool) (DecodedBool, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedBool{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], true)
	if err != nil {
		return DecodedBool{}, 0, err
	}

	values, err := stream.DecodeBoolean(s)
	if err != nil {
		return DecodedBool{}, 0, err
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedBool{}, 0, err
	}

	return DecodedBool{Values: values, Present: present}, n + m, nil
}

// DecodedI32 is a decoded signed 32-bit scalar column.
type DecodedI32 struct {
	Values  []int32
	Present []bool
}

// EncodeI32 serializes an I32/OptI32 column. Use EncodeU32/EncodeI8/etc for
// other element types; each follows the identical (presence, data) shape
// with a different physical width.
func EncodeI32(name string, values []int32, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := I32
	if enc.Optional {
		typ = OptI32
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	var s stream.Stream

	var err error

	if enc.Preset.Logical1 == stream.LogicalDelta || enc.Preset.Logical2 == stream.Logical2Rle {
		s, err = stream.EncodeDeltaI32(stream.DataType(stream.DictionaryNone), values, enc.Preset)
	} else {
		zz := make([]uint32, len(values))
		for i, v := range values {
			zz[i] = uint32(v) //nolint:gosec
		}

		s, err = stream.EncodeU32(stream.DataType(stream.DictionaryNone), zz, enc.Preset)
	}

	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeI32Body parses an I32/OptI32 column body.
func DecodeI32Body(data []byte, optional bool) (DecodedI32, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedI32{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedI32{}, 0, err
	}

	var values []int32

	if s.Meta.Encoding.Logical1 == stream.LogicalDelta {
		values, err = stream.DecodeDeltaI32(s)
	} else {
		var u32s []uint32

		u32s, err = stream.DecodeU32(s)
		if err == nil {
			values = make([]int32, len(u32s))
			for i, v := range u32s {
				values[i] = int32(v) //nolint:gosec
			}
		}
	}

	if err != nil {
		return DecodedI32{}, 0, err
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedI32{}, 0, err
	}

	return DecodedI32{Values: values, Present: present}, n + m, nil
}

// DecodedU32 is a decoded unsigned 32-bit scalar column.
type DecodedU32 struct {
	Values  []uint32
	Present []bool
}

// EncodeU32 serializes a U32/OptU32 column.
func EncodeU32(name string, values []uint32, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := U32
	if enc.Optional {
		typ = OptU32
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	s, err := stream.EncodeU32(stream.DataType(stream.DictionaryNone), values, enc.Preset)
	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeU32Body parses a U32/OptU32 column body.
func DecodeU32Body(data []byte, optional bool) (DecodedU32, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedU32{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedU32{}, 0, err
	}

	values, err := stream.DecodeU32(s)
	if err != nil {
		return DecodedU32{}, 0, err
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedU32{}, 0, err
	}

	return DecodedU32{Values: values, Present: present}, n + m, nil
}

// DecodedI64 is a decoded signed 64-bit scalar column.
type DecodedI64 struct {
	Values  []int64
	Present []bool
}

// EncodeI64 serializes an I64/OptI64 column.
func EncodeI64(name string, values []int64, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := I64
	if enc.Optional {
		typ = OptI64
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	var s stream.Stream

	var err error

	if enc.Preset.Logical1 == stream.LogicalDelta {
		s, err = stream.EncodeDeltaI64(stream.DataType(stream.DictionaryNone), values, enc.Preset)
	} else {
		u64s := make([]uint64, len(values))
		for i, v := range values {
			u64s[i] = uint64(v) //nolint:gosec
		}

		s, err = stream.EncodeU64(stream.DataType(stream.DictionaryNone), u64s, enc.Preset)
	}

	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeI64Body parses an I64/OptI64 column body.
func DecodeI64Body(data []byte, optional bool) (DecodedI64, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedI64{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedI64{}, 0, err
	}

	var values []int64

	if s.Meta.Encoding.Logical1 == stream.LogicalDelta {
		values, err = stream.DecodeDeltaI64(s)
	} else {
		var u64s []uint64

		u64s, err = stream.DecodeU64(s)
		if err == nil {
			values = make([]int64, len(u64s))
			for i, v := range u64s {
				values[i] = int64(v) //nolint:gosec
			}
		}
	}

	if err != nil {
		return DecodedI64{}, 0, err
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedI64{}, 0, err
	}

	return DecodedI64{Values: values, Present: present}, n + m, nil
}

// DecodedU64 is a decoded unsigned 64-bit scalar column.
type DecodedU64 struct {
	Values  []uint64
	Present []bool
}

// EncodeU64 serializes a U64/OptU64 column.
func EncodeU64(name string, values []uint64, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := U64
	if enc.Optional {
		typ = OptU64
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	s, err := stream.EncodeU64(stream.DataType(stream.DictionaryNone), values, enc.Preset)
	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeU64Body parses a U64/OptU64 column body.
func DecodeU64Body(data []byte, optional bool) (DecodedU64, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedU64{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedU64{}, 0, err
	}

	values, err := stream.DecodeU64(s)
	if err != nil {
		return DecodedU64{}, 0, err
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedU64{}, 0, err
	}

	return DecodedU64{Values: values, Present: present}, n + m, nil
}

// DecodedI8 is a decoded signed 8-bit scalar column, stored on the wire as
// a U32 stream (the narrowest physical width the stream envelope defines).
type DecodedI8 struct {
	Values  []int8
	Present []bool
}

// EncodeI8 serializes an I8/OptI8 column.
func EncodeI8(name string, values []int8, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := I8
	if enc.Optional {
		typ = OptI8
	}

	widened := make([]uint32, len(values))
	for i, v := range values {
		widened[i] = uint32(uint8(v)) //nolint:gosec
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	s, err := stream.EncodeU32(stream.DataType(stream.DictionaryNone), widened, enc.Preset)
	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeI8Body parses an I8/OptI8 column body.
func DecodeI8Body(data []byte, optional bool) (DecodedI8, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedI8{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedI8{}, 0, err
	}

	u32s, err := stream.DecodeU32(s)
	if err != nil {
		return DecodedI8{}, 0, err
	}

	values := make([]int8, len(u32s))
	for i, v := range u32s {
		values[i] = int8(uint8(v)) //nolint:gosec
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedI8{}, 0, err
	}

	return DecodedI8{Values: values, Present: present}, n + m, nil
}

// DecodedU8 is a decoded unsigned 8-bit scalar column, stored on the wire
// as a U32 stream.
type DecodedU8 struct {
	Values  []uint8
	Present []bool
}

// EncodeU8 serializes a U8/OptU8 column.
func EncodeU8(name string, values []uint8, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := U8
	if enc.Optional {
		typ = OptU8
	}

	widened := make([]uint32, len(values))
	for i, v := range values {
		widened[i] = uint32(v)
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	s, err := stream.EncodeU32(stream.DataType(stream.DictionaryNone), widened, enc.Preset)
	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeU8Body parses a U8/OptU8 column body.
func DecodeU8Body(data []byte, optional bool) (DecodedU8, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedU8{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedU8{}, 0, err
	}

	u32s, err := stream.DecodeU32(s)
	if err != nil {
		return DecodedU8{}, 0, err
	}

	values := make([]uint8, len(u32s))
	for i, v := range u32s {
		values[i] = uint8(v) //nolint:gosec
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedU8{}, 0, err
	}

	return DecodedU8{Values: values, Present: present}, n + m, nil
}

// DecodedF32 is a decoded F32/OptF32 column.
type DecodedF32 struct {
	Values  []float32
	Present []bool
}

// EncodeF32 serializes an F32/OptF32 column. F32 streams are stored as
// fixed-width u32 bit patterns (physical None); logical transforms do not
// apply to floating point columns (spec.md §4.2's transforms are all
// integer-domain, PseudoDecimal excepted, which targets F64 lossy storage).
func EncodeF32(name string, values []float32, present []bool, optional bool) []byte {
	typ := F32
	if optional {
		typ = OptF32
	}

	bits := make([]uint32, len(values))
	for i, v := range values {
		bits[i] = math.Float32bits(v)
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	s, _ := stream.EncodeU32(stream.DataType(stream.DictionaryNone), bits, stream.Plain()) //nolint:errcheck

	return append(dst, s.Bytes()...)
}

// DecodeF32Body parses an F32/OptF32 column body.
func DecodeF32Body(data []byte, optional bool) (DecodedF32, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedF32{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedF32{}, 0, err
	}

	bits, err := stream.DecodeU32(s)
	if err != nil {
		return DecodedF32{}, 0, err
	}

	values := make([]float32, len(bits))
	for i, b := range bits {
		values[i] = math.Float32frombits(b)
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedF32{}, 0, err
	}

	return DecodedF32{Values: values, Present: present}, n + m, nil
}

// DecodedF64 is a decoded F64/OptF64 column. Per spec.md §4.4, F64 values
// are stored on the wire as F32 (documented precision loss); Values here
// are the promoted-back-to-float64 results.
type DecodedF64 struct {
	Values  []float64
	Present []bool
}

// EncodeF64 serializes an F64/OptF64 column. The default wire form demotes
// each value to float32; when enc.PseudoDecimal is set the column is
// stored as a (significand, exponent) pair stream instead, which keeps
// near-integer decimals exact at the cost of a wider payload.
func EncodeF64(name string, values []float64, present []bool, enc ScalarEncoder) ([]byte, error) {
	typ := F64
	if enc.Optional {
		typ = OptF64
	}

	dst := []byte{byte(typ)}
	dst = AppendString(dst, name)
	dst = encodePresence(dst, present)

	if enc.PseudoDecimal {
		s, err := stream.EncodePseudoDecimalF64(stream.DataType(stream.DictionaryNone), values, stream.PhysicalVByte)
		if err != nil {
			return nil, err
		}

		return append(dst, s.Bytes()...), nil
	}

	bits := make([]uint32, len(values))
	for i, v := range values {
		bits[i] = math.Float32bits(float32(v))
	}

	s, err := stream.EncodeU32(stream.DataType(stream.DictionaryNone), bits, stream.Plain())
	if err != nil {
		return nil, err
	}

	return append(dst, s.Bytes()...), nil
}

// DecodeF64Body parses an F64/OptF64 column body: pseudo-decimal streams
// decode to their exact values, plain streams promote the stored f32 bit
// patterns back to float64.
func DecodeF64Body(data []byte, optional bool) (DecodedF64, int, error) {
	present, n, err := decodePresence(data, optional)
	if err != nil {
		return DecodedF64{}, 0, err
	}

	s, m, err := stream.Parse(data[n:], false)
	if err != nil {
		return DecodedF64{}, 0, err
	}

	var values []float64

	if s.Meta.Encoding.Logical1 == stream.LogicalPseudoDecimal {
		values, err = stream.DecodePseudoDecimalF64(s)
		if err != nil {
			return DecodedF64{}, 0, err
		}
	} else {
		bits, berr := stream.DecodeU32(s)
		if berr != nil {
			return DecodedF64{}, 0, berr
		}

		values = make([]float64, len(bits))
		for i, b := range bits {
			values[i] = float64(math.Float32frombits(b))
		}
	}

	if err := validatePresenceCount(present, len(values)); err != nil {
		return DecodedF64{}, 0, err
	}

	return DecodedF64{Values: values, Present: present}, n + m, nil
}

// checkScalarNulls returns ErrColumnCountMismatch-flavoured validation: a
// non-optional scalar column must carry a value for every feature.
func checkScalarNulls(featureCount, valueCount int, optional bool) error {
	if !optional && valueCount != featureCount {
		return fmt.Errorf("column: %w: non-optional scalar column has %d values for %d features", errs.ErrColumnCountMismatch, valueCount, featureCount)
	}

	return nil
}
