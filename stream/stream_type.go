package stream

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// Type is a parsed stream_type byte: a Kind in the high nibble and a
// kind-specific sub-kind value in the low nibble.
type Type struct {
	Kind    Kind
	SubKind uint8
}

// DataType builds a Data-kind stream type for dt.
func DataType(dt DictionaryType) Type { return Type{Kind: KindData, SubKind: uint8(dt)} }

// PresentType builds the single Present-kind stream type.
func PresentType() Type { return Type{Kind: KindPresent} }

// OffsetStreamType builds an Offset-kind stream type for ot.
func OffsetStreamType(ot OffsetType) Type { return Type{Kind: KindOffset, SubKind: uint8(ot)} }

// LengthStreamType builds a Length-kind stream type for lt.
func LengthStreamType(lt LengthType) Type { return Type{Kind: KindLength, SubKind: uint8(lt)} }

// Byte packs Type into its single wire byte: high nibble Kind, low nibble SubKind.
func (t Type) Byte() byte {
	return byte(t.Kind)<<4 | (t.SubKind & 0x0F)
}

// ParseType unpacks a stream_type byte. Unknown Kind values fail with
// ErrInvalidStreamType; the sub-kind is not validated here since its legal
// range depends on the Kind, which callers check against the enum they expect.
func ParseType(b byte) (Type, error) {
	kind := Kind(b >> 4)
	switch kind {
	case KindPresent, KindData, KindOffset, KindLength:
		return Type{Kind: kind, SubKind: b & 0x0F}, nil
	default:
		return Type{}, fmt.Errorf("stream: %w: stream_type high nibble %d", errs.ErrInvalidStreamType, kind)
	}
}
