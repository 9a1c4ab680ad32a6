// Package column implements property columns (spec.md §4.4/§4.6): scalar
// columns over the primitive element types, plain and FSST string columns,
// shared-dictionary struct columns, and each column's optional presence
// bitmap.
package column

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
)

// Type is the column_type wire byte. Opt* variants carry a leading
// presence stream and encode only non-null values.
type Type uint8

const (
	Bool Type = iota
	OptBool
	I8
	OptI8
	U8
	OptU8
	I32
	OptI32
	U32
	OptU32
	I64
	OptI64
	U64
	OptU64
	F32
	OptF32
	F64
	OptF64
	Str
	OptStr
	Struct
	Geometry
)

// IsOptional reports whether t is one of the Opt* variants.
func (t Type) IsOptional() bool {
	switch t {
	case OptBool, OptI8, OptU8, OptI32, OptU32, OptI64, OptU64, OptF32, OptF64, OptStr:
		return true
	default:
		return false
	}
}

func validType(t Type) error {
	if t > Geometry {
		return fmt.Errorf("column: %w: column_type %d", errs.ErrInvalidColumnType, t)
	}

	return nil
}

// AppendString appends a varint-length-prefixed UTF-8 string.
func AppendString(dst []byte, s string) []byte {
	dst = bitpack.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// ParseString reads a varint-length-prefixed UTF-8 string from the front
// of data, returning the string and bytes consumed.
func ParseString(data []byte) (string, int, error) {
	length, n, err := bitpack.ReadUvarint(data)
	if err != nil {
		return "", 0, fmt.Errorf("column: %w: string length", err)
	}

	end := n + int(length)
	if end > len(data) {
		return "", 0, fmt.Errorf("column: %w: string body truncated", errs.ErrTruncated)
	}

	return string(data[n:end]), end, nil
}
