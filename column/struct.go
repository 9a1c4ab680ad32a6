package column

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/internal/dictionary"
	"github.com/maplibre/mlt-go/stream"
)

// StructChildInput is one child of a struct column before encoding: a
// name and a parallel (values, present) pair, present being nil when the
// child has no nulls and should be stored without a per-child presence
// stream.
type StructChildInput struct {
	Name    string
	Values  []string // only the non-null values, in feature order
	Present []bool   // nil, or one entry per feature (true = has a value)
}

// EncodeStruct serializes a Struct column: shared-dictionary streams
// followed by, for each child, its stream count, optional presence, and
// offset stream (spec.md §4.6).
//
// dictEncoding selects how the shared dictionary itself is compressed;
// spec.md directs the first child's encoder to choose this.
func EncodeStruct(name string, children []StructChildInput, dictEncoding StringEncoding) ([]byte, error) {
	builder := dictionary.NewBuilder()
	childIndices := make([][]int, len(children))

	for ci, child := range children {
		idx := make([]int, len(child.Values))
		for i, v := range child.Values {
			idx[i] = builder.Intern(v)
		}

		childIndices[ci] = idx
	}

	dictValues := builder.Values()

	dst := []byte{byte(Struct)}
	dst = AppendString(dst, name)

	streamCount := uint64(2) // dictionary data + length (plain) or 4 for FSST

	var dictStreams []byte

	switch dictEncoding {
	case StringFsst:
		streamCount = 4
		dictStreams = encodeFsstBody(dictValues, nil)
		// encodeFsstBody writes its own stream-count varint + presence slot;
		// the struct layout has no column-level presence for the dictionary,
		// so strip the leading stream-count varint it wrote for itself.
		dictStreams = stripLeadingVarint(dictStreams)
	default:
		dictStreams = encodePlainBody(dictValues, nil)
		dictStreams = stripLeadingVarint(dictStreams)
	}

	for _, child := range children {
		streamCount++ // offset stream

		if child.Present != nil {
			streamCount++
		}
	}

	dst = bitpack.AppendUvarint(dst, streamCount)
	dst = append(dst, dictStreams...)

	// Each child's name is written inline ahead of its stream block, the
	// way the reference implementation's write_columns_meta_to folds child
	// type/name metadata into the struct's own column metadata (spec.md
	// §4.6 names children only as "sibling fields" without saying how a
	// decoder recovers their names from raw bytes alone).
	dst = bitpack.AppendUvarint(dst, uint64(len(children)))

	for ci, child := range children {
		dst = AppendString(dst, child.Name)
		dst = append(dst, encodeStructChild(child, childIndices[ci])...)
	}

	return dst, nil
}

// stripLeadingVarint removes the stream-count varint that encodePlainBody/
// encodeFsstBody prepend when used standalone for a Str column; struct
// columns fold the dictionary's streams into the struct's own leading count.
func stripLeadingVarint(data []byte) []byte {
	_, n, err := bitpack.ReadUvarint(data)
	if err != nil {
		return data
	}

	return data[n:]
}

// encodeStructChild serializes one child's (stream-count, presence?,
// offset) block. The child's offset stream holds, per present position,
// the dictionary index assigned above.
func encodeStructChild(child StructChildInput, indices []int) []byte {
	var dst []byte

	count := uint64(1)
	if child.Present != nil {
		count = 2
	}

	dst = bitpack.AppendUvarint(dst, count)
	dst = encodePresence(dst, child.Present)

	offsets := make([]uint32, len(indices))
	for i, idx := range indices {
		offsets[i] = uint32(idx) //nolint:gosec
	}

	offStream, _ := stream.EncodeU32(stream.OffsetStreamType(stream.OffsetKey), offsets, stream.Varint()) //nolint:errcheck
	dst = append(dst, offStream.Bytes()...)

	return dst
}

// DecodedStructChild is one decoded child of a struct column. Like the
// scalar Decoded* types, Values holds only the present values in feature
// order; Present (nil when every feature has a value) marks which feature
// positions they occupy.
type DecodedStructChild struct {
	Name    string
	Values  []string
	Present []bool
}

// DecodeStructBody parses a Struct column body (after column_type and
// parent name have been consumed), including each child's inline name.
func DecodeStructBody(data []byte) ([]DecodedStructChild, int, error) {
	streamCount, n, err := bitpack.ReadUvarint(data)
	if err != nil {
		return nil, 0, fmt.Errorf("column: %w: struct stream count", err)
	}

	offset := n

	dictValues, consumed, dictStreams, err := decodeDictionary(data[offset:])
	if err != nil {
		return nil, 0, err
	}

	offset += consumed

	childCount, n, err := bitpack.ReadUvarint(data[offset:])
	if err != nil {
		return nil, 0, fmt.Errorf("column: %w: struct child count", err)
	}

	offset += n

	children := make([]DecodedStructChild, 0, childCount)
	streamsLeft := int(streamCount) - dictStreams

	for ci := 0; ci < int(childCount); ci++ {
		childName, n, err := ParseString(data[offset:])
		if err != nil {
			return nil, 0, err
		}

		offset += n

		count, n, err := bitpack.ReadUvarint(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("column: %w: struct child stream count", err)
		}

		offset += n
		streamsLeft -= int(count)

		optional := count == 2

		present, m, err := decodePresence(data[offset:], optional)
		if err != nil {
			return nil, 0, err
		}

		offset += m

		offStream, m, err := stream.Parse(data[offset:], false)
		if err != nil {
			return nil, 0, err
		}

		offset += m

		indices, err := stream.DecodeU32(offStream)
		if err != nil {
			return nil, 0, err
		}

		values := make([]string, len(indices))

		for i, idx := range indices {
			if int(idx) >= len(dictValues) {
				return nil, 0, fmt.Errorf("column: %w: struct child offset %d exceeds dictionary size %d", errs.ErrGeometryOutOfBounds, idx, len(dictValues))
			}

			values[i] = dictValues[idx]
		}

		if err := validatePresenceCount(present, len(values)); err != nil {
			return nil, 0, err
		}

		children = append(children, DecodedStructChild{Name: childName, Values: values, Present: present})
	}

	if streamsLeft != 0 {
		return nil, 0, fmt.Errorf("column: %w: struct column declared %d streams, consumed %d extra", errs.ErrStreamCountMismatch, streamCount, streamCount-uint64(streamsLeft))
	}

	return children, offset, nil
}

// decodeDictionary parses the struct column's shared-dictionary streams,
// trying the FSST (4-stream) shape first since it is self-describing via
// the stream tags it carries; falls back to plain (2-stream) on tag
// mismatch.
func decodeDictionary(data []byte) ([]string, int, int, error) {
	first, _, err := stream.Parse(data, false)
	if err != nil {
		return nil, 0, 0, err
	}

	if first.Meta.Type.Kind == stream.KindLength && stream.LengthType(first.Meta.Type.SubKind) == stream.LengthSymbol {
		values, consumed, err := decodeFsstBody(data)
		return values, consumed, 4, err
	}

	values, consumed, err := decodePlainBody(data)

	return values, consumed, 2, err
}
