package stream

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// Logical1 is the primary logical transform tag, packed into bits 5-7 of
// the encoding byte.
type Logical1 uint8

const (
	LogicalNone               Logical1 = 0
	LogicalDelta              Logical1 = 1
	LogicalComponentwiseDelta Logical1 = 2
	LogicalRle                Logical1 = 3
	LogicalMorton             Logical1 = 4
	LogicalPseudoDecimal      Logical1 = 5
)

// Logical2 is the secondary logical transform tag, packed into bits 2-4.
// It only ever composes with LogicalDelta to form the DeltaRle composite.
type Logical2 uint8

const (
	Logical2None Logical2 = 0
	Logical2Rle  Logical2 = 1
)

// Physical is the physical encoding tag, packed into bits 0-1.
type Physical uint8

const (
	PhysicalNone     Physical = 0
	PhysicalFastPFOR Physical = 1
	PhysicalVByte    Physical = 2
	PhysicalALP      Physical = 3
)

// Encoding is the parsed encoding byte.
type Encoding struct {
	Logical1 Logical1
	Logical2 Logical2
	Physical Physical
}

// Byte packs Encoding into its single wire byte.
func (e Encoding) Byte() byte {
	return byte(e.Logical1)<<5 | byte(e.Logical2)<<2 | byte(e.Physical)
}

// legalCombos enumerates the (logical1, logical2) pairs spec.md allows.
var legalCombos = map[[2]uint8]bool{
	{uint8(LogicalNone), uint8(Logical2None)}:               true,
	{uint8(LogicalDelta), uint8(Logical2None)}:               true,
	{uint8(LogicalComponentwiseDelta), uint8(Logical2None)}:  true,
	{uint8(LogicalDelta), uint8(Logical2Rle)}:                true,
	{uint8(LogicalRle), uint8(Logical2None)}:                 true,
	{uint8(LogicalMorton), uint8(Logical2None)}:               true,
	{uint8(LogicalPseudoDecimal), uint8(Logical2None)}:        true,
}

// ParseEncoding unpacks an encoding byte, validating the (logical1,
// logical2) combination and rejecting the reserved ALP physical tag.
func ParseEncoding(b byte) (Encoding, error) {
	e := Encoding{
		Logical1: Logical1(b >> 5 & 0x07),
		Logical2: Logical2(b >> 2 & 0x07),
		Physical: Physical(b & 0x03),
	}

	if !legalCombos[[2]uint8{uint8(e.Logical1), uint8(e.Logical2)}] {
		return Encoding{}, fmt.Errorf("stream: %w: logical1=%d logical2=%d", errs.ErrInvalidLogicalEncoding, e.Logical1, e.Logical2)
	}

	if e.Physical == PhysicalALP {
		return Encoding{}, fmt.Errorf("stream: %w: ALP physical encoding is reserved", errs.ErrUnsupported)
	}

	return e, nil
}

// IsDeltaRle reports whether e is the DeltaRle composite (Delta + Rle).
func (e Encoding) IsDeltaRle() bool {
	return e.Logical1 == LogicalDelta && e.Logical2 == Logical2Rle
}

// IsPlainRle reports whether e is Rle without the Delta composite.
func (e Encoding) IsPlainRle() bool {
	return e.Logical1 == LogicalRle && e.Logical2 == Logical2None
}
