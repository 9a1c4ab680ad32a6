// Package stream implements the stream envelope (spec.md §4.3): the header
// every encoded stream carries (stream_type, encoding byte, varint
// num_values/byte_length, optional logical parameters) plus the
// physical/logical dispatch that turns a stream's payload bytes into typed
// Go values and back.
package stream

import "fmt"

// Kind is the high nibble of a stream_type byte.
type Kind uint8

const (
	KindPresent Kind = 0
	KindData    Kind = 1
	KindOffset  Kind = 2
	KindLength  Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindPresent:
		return "Present"
	case KindData:
		return "Data"
	case KindOffset:
		return "Offset"
	case KindLength:
		return "Length"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DictionaryType is the Data-kind sub-kind enum.
type DictionaryType uint8

const (
	DictionaryNone   DictionaryType = 0
	DictionarySingle DictionaryType = 1
	DictionaryShared DictionaryType = 2
	DictionaryVertex DictionaryType = 3
	DictionaryMorton DictionaryType = 4
	DictionaryFsst   DictionaryType = 5
)

// OffsetType is the Offset-kind sub-kind enum.
type OffsetType uint8

const (
	OffsetVertex OffsetType = 0
	OffsetIndex  OffsetType = 1
	OffsetString OffsetType = 2
	OffsetKey    OffsetType = 3
)

// LengthType is the Length-kind sub-kind enum.
type LengthType uint8

const (
	LengthVarBinary  LengthType = 0
	LengthGeometries LengthType = 1
	LengthParts      LengthType = 2
	LengthRings      LengthType = 3
	LengthTriangles  LengthType = 4
	LengthSymbol     LengthType = 5
	LengthDictionary LengthType = 6
)
