package stream

import (
	"fmt"
	"math"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
)

// Meta is the full stream envelope header (spec.md §4.3).
type Meta struct {
	Type       Type
	Encoding   Encoding
	NumValues  uint32
	ByteLength uint32

	// Runs and NumRleValues apply only when Encoding is IsPlainRle or
	// IsDeltaRle. When Boolean is true they are omitted from the wire and
	// instead derived as ceil(NumValues/8) and ByteLength.
	Runs         uint32
	NumRleValues uint32

	// NumBits and CoordinateShift apply only when Encoding.Logical1 is
	// LogicalMorton.
	NumBits         uint32
	CoordinateShift uint32

	// Boolean marks a stream encoded with the boolean convention: it is
	// always byte-RLE over a packed bitmap, and Runs/NumRleValues are
	// derived rather than stored.
	Boolean bool
}

// AppendTo serializes the header (everything but the payload bytes) to dst.
func (m Meta) AppendTo(dst []byte) []byte {
	dst = append(dst, m.Type.Byte())
	dst = append(dst, m.Encoding.Byte())
	dst = bitpack.AppendUvarint(dst, uint64(m.NumValues))
	dst = bitpack.AppendUvarint(dst, uint64(m.ByteLength))

	switch {
	case m.Boolean:
		// runs/num_rle_values are derived on decode, nothing to write.
	case m.Encoding.IsPlainRle() || m.Encoding.IsDeltaRle():
		dst = bitpack.AppendUvarint(dst, uint64(m.Runs))
		dst = bitpack.AppendUvarint(dst, uint64(m.NumRleValues))
	case m.Encoding.Logical1 == LogicalMorton:
		dst = bitpack.AppendUvarint(dst, uint64(m.NumBits))
		dst = bitpack.AppendUvarint(dst, uint64(m.CoordinateShift))
	}

	return dst
}

// ParseMeta parses a header from the front of data. boolean must be passed
// by the caller based on context (spec.md's "per-stream boolean
// convention" constructor flag), since the wire format itself does not
// self-describe which streams use it.
func ParseMeta(data []byte, boolean bool) (Meta, int, error) {
	if len(data) < 2 {
		return Meta{}, 0, fmt.Errorf("stream: %w: header missing type/encoding bytes", errs.ErrTruncated)
	}

	typ, err := ParseType(data[0])
	if err != nil {
		return Meta{}, 0, err
	}

	enc, err := ParseEncoding(data[1])
	if err != nil {
		return Meta{}, 0, err
	}

	offset := 2

	numValues, n, err := readU32Field(data[offset:], "num_values")
	if err != nil {
		return Meta{}, 0, err
	}
	offset += n

	byteLength, n, err := readU32Field(data[offset:], "byte_length")
	if err != nil {
		return Meta{}, 0, err
	}
	offset += n

	m := Meta{
		Type:       typ,
		Encoding:   enc,
		NumValues:  numValues,
		ByteLength: byteLength,
		Boolean:    boolean,
	}

	switch {
	case boolean:
		m.Runs = (m.NumValues + 7) / 8
		m.NumRleValues = m.ByteLength
	case enc.IsPlainRle() || enc.IsDeltaRle():
		runs, n, err := readU32Field(data[offset:], "runs")
		if err != nil {
			return Meta{}, 0, err
		}
		offset += n

		numRle, n, err := readU32Field(data[offset:], "num_rle_values")
		if err != nil {
			return Meta{}, 0, err
		}
		offset += n

		m.Runs = runs
		m.NumRleValues = numRle
	case enc.Logical1 == LogicalMorton:
		numBits, n, err := readU32Field(data[offset:], "num_bits")
		if err != nil {
			return Meta{}, 0, err
		}
		offset += n

		shift, n, err := readU32Field(data[offset:], "coordinate_shift")
		if err != nil {
			return Meta{}, 0, err
		}
		offset += n

		m.NumBits = numBits
		m.CoordinateShift = shift
	}

	return m, offset, nil
}

// readU32Field reads one varint header field, rejecting values that do not
// fit the u32 width the header fields are defined with.
func readU32Field(data []byte, field string) (uint32, int, error) {
	v, n, err := bitpack.ReadUvarint(data)
	if err != nil {
		return 0, 0, fmt.Errorf("stream: %w: %s", err, field)
	}

	if v > math.MaxUint32 {
		return 0, 0, fmt.Errorf("stream: %w: %s %d exceeds u32", errs.ErrIntegerOverflow, field, v)
	}

	return uint32(v), n, nil
}
