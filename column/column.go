package column

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// DecodedColumn is one parsed property column: its declared name, type,
// and type-tagged decoded payload. Exactly one of the Decoded* fields is
// populated, selected by Type (geometry columns are decoded separately by
// the geometry package and never appear here).
type DecodedColumn struct {
	Name   string
	Type   Type
	Bool   *DecodedBool
	I8     *DecodedI8
	U8     *DecodedU8
	I32    *DecodedI32
	U32    *DecodedU32
	I64    *DecodedI64
	U64    *DecodedU64
	F32    *DecodedF32
	F64    *DecodedF64
	Str    *DecodedString
	Struct []DecodedStructChild
}

// DecodeColumn parses one property column (column_type, name, body) from
// the front of data. Geometry columns (Type == Geometry) are rejected:
// callers route those to the geometry package instead, since a layer's
// single geometry column has a different body shape entirely (spec.md §6).
func DecodeColumn(data []byte) (DecodedColumn, int, error) {
	if len(data) < 1 {
		return DecodedColumn{}, 0, fmt.Errorf("column: %w: missing column_type byte", errs.ErrTruncated)
	}

	typ := Type(data[0])
	if err := validType(typ); err != nil {
		return DecodedColumn{}, 0, err
	}

	if typ == Geometry {
		return DecodedColumn{}, 0, fmt.Errorf("column: %w: geometry columns are decoded by the geometry package", errs.ErrUnexpectedStreamType)
	}

	name, n, err := ParseString(data[1:])
	if err != nil {
		return DecodedColumn{}, 0, err
	}

	offset := 1 + n
	col := DecodedColumn{Name: name, Type: typ}

	var consumed int

	switch typ {
	case Bool, OptBool:
		v, c, err := DecodeBoolBody(data[offset:], typ == OptBool)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.Bool, consumed = &v, c
	case I8, OptI8:
		v, c, err := DecodeI8Body(data[offset:], typ == OptI8)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.I8, consumed = &v, c
	case U8, OptU8:
		v, c, err := DecodeU8Body(data[offset:], typ == OptU8)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.U8, consumed = &v, c
	case I32, OptI32:
		v, c, err := DecodeI32Body(data[offset:], typ == OptI32)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.I32, consumed = &v, c
	case U32, OptU32:
		v, c, err := DecodeU32Body(data[offset:], typ == OptU32)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.U32, consumed = &v, c
	case I64, OptI64:
		v, c, err := DecodeI64Body(data[offset:], typ == OptI64)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.I64, consumed = &v, c
	case U64, OptU64:
		v, c, err := DecodeU64Body(data[offset:], typ == OptU64)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.U64, consumed = &v, c
	case F32, OptF32:
		v, c, err := DecodeF32Body(data[offset:], typ == OptF32)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.F32, consumed = &v, c
	case F64, OptF64:
		v, c, err := DecodeF64Body(data[offset:], typ == OptF64)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.F64, consumed = &v, c
	case Str, OptStr:
		v, c, err := DecodeStringBody(data[offset:], typ == OptStr)
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.Str, consumed = &v, c
	case Struct:
		v, c, err := DecodeStructBody(data[offset:])
		if err != nil {
			return DecodedColumn{}, 0, err
		}

		col.Struct, consumed = v, c
	default:
		return DecodedColumn{}, 0, fmt.Errorf("column: %w: column_type %d", errs.ErrInvalidColumnType, typ)
	}

	return col, offset + consumed, nil
}

// Properties expands col into its decoded (name, value-per-feature) form:
// scalar columns yield one entry, struct columns expand into one entry per
// child with the parent name prepended (spec.md §3 "Property column
// (string struct)": "P<child>", literal concatenation).
func (col DecodedColumn) Properties() []DecodedProperty {
	switch col.Type {
	case Bool, OptBool:
		return []DecodedProperty{{Name: col.Name, Values: boolValues(*col.Bool)}}
	case I8, OptI8:
		return []DecodedProperty{{Name: col.Name, Values: i8Values(*col.I8)}}
	case U8, OptU8:
		return []DecodedProperty{{Name: col.Name, Values: u8Values(*col.U8)}}
	case I32, OptI32:
		return []DecodedProperty{{Name: col.Name, Values: i32Values(*col.I32)}}
	case U32, OptU32:
		return []DecodedProperty{{Name: col.Name, Values: u32Values(*col.U32)}}
	case I64, OptI64:
		return []DecodedProperty{{Name: col.Name, Values: i64Values(*col.I64)}}
	case U64, OptU64:
		return []DecodedProperty{{Name: col.Name, Values: u64Values(*col.U64)}}
	case F32, OptF32:
		return []DecodedProperty{{Name: col.Name, Values: f32Values(*col.F32)}}
	case F64, OptF64:
		return []DecodedProperty{{Name: col.Name, Values: f64Values(*col.F64)}}
	case Str, OptStr:
		return []DecodedProperty{{Name: col.Name, Values: strValues(*col.Str)}}
	case Struct:
		out := make([]DecodedProperty, len(col.Struct))
		for i, child := range col.Struct {
			out[i] = DecodedProperty{Name: col.Name + child.Name, Values: structChildValues(child)}
		}

		return out
	default:
		return nil
	}
}

// DecodedProperty is a fully expanded property: a name and its per-feature
// value, nil meaning absent (spec.md §4.6's decoder output shape).
type DecodedProperty struct {
	Name   string
	Values []any
}

func boolValues(d DecodedBool) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func i8Values(d DecodedI8) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func u8Values(d DecodedU8) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func i32Values(d DecodedI32) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func u32Values(d DecodedU32) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func i64Values(d DecodedI64) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func u64Values(d DecodedU64) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func f32Values(d DecodedF32) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func f64Values(d DecodedF64) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func strValues(d DecodedString) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

func structChildValues(d DecodedStructChild) []any {
	return expand(len(d.Values), d.Present, func(i int) any { return d.Values[i] })
}

// expand walks a presence bitmap (or, when nil, treats every position as
// present) and calls nextValue for each present position in turn, laying
// the result out one entry per logical feature with nil for absent ones.
// nonOptLen is the value count to use when present is nil (every position
// present, values already feature-indexed 1:1).
func expand(nonOptLen int, present []bool, nextValue func(valueIdx int) any) []any {
	if present == nil {
		out := make([]any, nonOptLen)
		for i := range out {
			out[i] = nextValue(i)
		}

		return out
	}

	out := make([]any, len(present))
	valueIdx := 0

	for i, p := range present {
		if p {
			out[i] = nextValue(valueIdx)
			valueIdx++
		}
	}

	return out
}
