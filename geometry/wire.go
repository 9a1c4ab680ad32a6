package geometry

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/stream"
)

// Encoder is the capability an encode caller passes to choose the
// per-stream logical/physical pairs of a geometry column. EncodeWith
// consults Config once per call; implementers differ only in which record
// they produce.
type Encoder interface {
	Config() EncoderConfig
}

// EncoderConfig is one encoder's stream-level choices.
type EncoderConfig struct {
	// Types encodes the per-feature geometry type stream.
	Types stream.Preset
	// Levels encodes every level length stream present in the pyramid.
	Levels stream.Preset
	// VertexPhysical applies to the vertex data stream.
	VertexPhysical stream.Physical
	// VertexMorton switches the vertex stream from componentwise-delta to
	// the Morton-coded layout, interleaving MortonBits bits per component
	// after adding MortonShift. Coordinates must land in [0, 2^MortonBits)
	// once shifted.
	VertexMorton bool
	MortonBits   int
	MortonShift  int32
}

// DefaultEncoder is Encode's built-in capability: run-length varint types,
// varint level streams, componentwise-delta/VByte vertices — the common
// case for quantised coordinate data.
type DefaultEncoder struct{}

// Config implements Encoder.
func (DefaultEncoder) Config() EncoderConfig {
	return EncoderConfig{
		Types:          stream.RleVarint(),
		Levels:         stream.Varint(),
		VertexPhysical: stream.PhysicalVByte,
	}
}

// Encode serializes col to its wire form with DefaultEncoder's choices.
func Encode(col Column) ([]byte, error) {
	return EncodeWith(col, DefaultEncoder{})
}

// EncodeWith serializes col to its wire form: a stream-count varint
// followed by a fixed-order sequence of present streams (spec.md §3, §4.5),
// each encoded per enc's configuration record. col.VertexOffsets,
// col.IndexBuffer and col.Triangles are reserved decode-only fields and
// must be nil (ErrUnsupported otherwise — spec.md's Non-goals exclude
// generating deduplicated vertices or a triangle mesh).
func EncodeWith(col Column, enc Encoder) ([]byte, error) {
	if col.VertexOffsets != nil || col.IndexBuffer != nil || col.Triangles != nil {
		return nil, fmt.Errorf("geometry: %w: encoding vertex_offsets/index_buffer/triangles is not supported", errs.ErrUnsupported)
	}

	cfg := enc.Config()

	streamCount := uint64(2) // types + vertices, always present

	if col.GeometryOffsets != nil {
		streamCount++
	}

	if col.PartOffsets != nil {
		streamCount++
	}

	if col.RingOffsets != nil {
		streamCount++
	}

	dst := bitpack.AppendUvarint(nil, streamCount)

	typesBytes, err := encodeTypes(col.Types, cfg.Types)
	if err != nil {
		return nil, err
	}

	dst = append(dst, typesBytes...)

	if col.GeometryOffsets != nil {
		s, err := stream.EncodeU32(stream.LengthStreamType(stream.LengthGeometries), unPrefixSum(col.GeometryOffsets), cfg.Levels)
		if err != nil {
			return nil, err
		}

		dst = append(dst, s.Bytes()...)
	}

	if col.PartOffsets != nil {
		s, err := stream.EncodeU32(stream.LengthStreamType(stream.LengthParts), unPrefixSum(col.PartOffsets), cfg.Levels)
		if err != nil {
			return nil, err
		}

		dst = append(dst, s.Bytes()...)
	}

	if col.RingOffsets != nil {
		s, err := stream.EncodeU32(stream.LengthStreamType(stream.LengthRings), unPrefixSum(col.RingOffsets), cfg.Levels)
		if err != nil {
			return nil, err
		}

		dst = append(dst, s.Bytes()...)
	}

	var vs stream.Stream

	if cfg.VertexMorton {
		vs, err = stream.EncodeMortonI32(stream.DataType(stream.DictionaryMorton), col.Vertices, cfg.MortonBits, cfg.MortonShift, cfg.VertexPhysical)
	} else {
		vs, err = stream.EncodeComponentwiseDeltaI32(stream.DataType(stream.DictionaryNone), col.Vertices, cfg.VertexPhysical)
	}

	if err != nil {
		return nil, err
	}

	dst = append(dst, vs.Bytes()...)

	return dst, nil
}

// unPrefixSum reverses prefixSum: turns a cumulative offset array back
// into per-entry child counts.
func unPrefixSum(offsets []uint32) []uint32 {
	counts := make([]uint32, len(offsets)-1)
	for i := range counts {
		counts[i] = offsets[i+1] - offsets[i]
	}

	return counts
}

// encodeTypes stores one geometry type per feature as a u32 stream. The
// default preset is run-length varint: adjacent features sharing a type
// (the common case for a homogeneous layer) collapse to a single run
// (spec.md §4.5).
func encodeTypes(types []Type, preset stream.Preset) ([]byte, error) {
	raw := make([]uint32, len(types))
	for i, t := range types {
		raw[i] = uint32(t)
	}

	s, err := stream.EncodeU32(stream.DataType(stream.DictionaryNone), raw, preset)
	if err != nil {
		return nil, err
	}

	return s.Bytes(), nil
}

// Decode parses one geometry column from the front of data.
func Decode(data []byte) (Column, int, error) {
	streamCount, n, err := bitpack.ReadUvarint(data)
	if err != nil {
		return Column{}, 0, fmt.Errorf("geometry: %w: stream count", err)
	}

	offset := n

	types, m, err := decodeTypes(data[offset:])
	if err != nil {
		return Column{}, 0, err
	}

	offset += m
	streamsLeft := int(streamCount) - 1

	var geomRaw, partRaw, ringRaw []uint32

	var vertexOffsets, indexBuffer, triangles []uint32

	var vertices []int32

	haveVertices := false

	for streamsLeft > 0 {
		s, m, err := stream.Parse(data[offset:], false)
		if err != nil {
			return Column{}, 0, err
		}

		offset += m
		streamsLeft--

		switch {
		case s.Meta.Type.Kind == stream.KindLength && stream.LengthType(s.Meta.Type.SubKind) == stream.LengthGeometries:
			if geomRaw != nil {
				return Column{}, 0, fmt.Errorf("geometry: %w: duplicate geometry_offsets stream", errs.ErrDuplicateStream)
			}

			geomRaw, err = stream.DecodeU32(s)
		case s.Meta.Type.Kind == stream.KindLength && stream.LengthType(s.Meta.Type.SubKind) == stream.LengthParts:
			if partRaw != nil {
				return Column{}, 0, fmt.Errorf("geometry: %w: duplicate part_offsets stream", errs.ErrDuplicateStream)
			}

			partRaw, err = stream.DecodeU32(s)
		case s.Meta.Type.Kind == stream.KindLength && stream.LengthType(s.Meta.Type.SubKind) == stream.LengthRings:
			if ringRaw != nil {
				return Column{}, 0, fmt.Errorf("geometry: %w: duplicate ring_offsets stream", errs.ErrDuplicateStream)
			}

			ringRaw, err = stream.DecodeU32(s)
		case s.Meta.Type.Kind == stream.KindLength && stream.LengthType(s.Meta.Type.SubKind) == stream.LengthTriangles:
			triangles, err = stream.DecodeU32(s)
		case s.Meta.Type.Kind == stream.KindOffset && stream.OffsetType(s.Meta.Type.SubKind) == stream.OffsetVertex:
			vertexOffsets, err = stream.DecodeU32(s)
		case s.Meta.Type.Kind == stream.KindOffset && stream.OffsetType(s.Meta.Type.SubKind) == stream.OffsetIndex:
			indexBuffer, err = stream.DecodeU32(s)
		case s.Meta.Type.Kind == stream.KindData:
			vertices, err = decodeVertexStream(s)
			haveVertices = true
		default:
			return Column{}, 0, fmt.Errorf("geometry: %w: stream_type kind=%d sub=%d", errs.ErrUnexpectedStreamType, s.Meta.Type.Kind, s.Meta.Type.SubKind)
		}

		if err != nil {
			return Column{}, 0, err
		}
	}

	if !haveVertices {
		return Column{}, 0, fmt.Errorf("geometry: %w: missing vertex data stream", errs.ErrTruncated)
	}

	geomOff, partOff, ringOff, err := buildOffsets(types, geomRaw, partRaw, ringRaw)
	if err != nil {
		return Column{}, 0, err
	}

	return Column{
		Types:           types,
		GeometryOffsets: geomOff,
		PartOffsets:     partOff,
		RingOffsets:     ringOff,
		VertexOffsets:   vertexOffsets,
		Vertices:        vertices,
		IndexBuffer:     indexBuffer,
		Triangles:       triangles,
	}, offset, nil
}

// decodeTypes parses the per-feature geometry type stream, a plain or
// run-length varint u32 stream (whichever encodeTypes chose to produce;
// Decode accepts both since DecodeU32 dispatches on the parsed encoding).
func decodeTypes(data []byte) ([]Type, int, error) {
	s, n, err := stream.Parse(data, false)
	if err != nil {
		return nil, 0, err
	}

	raw, err := stream.DecodeU32(s)
	if err != nil {
		return nil, 0, fmt.Errorf("geometry: %w: types stream", err)
	}

	types := make([]Type, len(raw))

	for i, v := range raw {
		types[i] = Type(v) //nolint:gosec
		if err := validType(types[i]); err != nil {
			return nil, 0, err
		}
	}

	return types, n, nil
}

// decodeVertexStream dispatches on the Data stream's logical encoding:
// ComponentwiseDelta is what Encode produces by default; Morton is what
// EncodeWith produces when EncoderConfig.VertexMorton is set
// (spec.md §4.5 "vertex encodings").
func decodeVertexStream(s stream.Stream) ([]int32, error) {
	switch s.Meta.Encoding.Logical1 {
	case stream.LogicalMorton:
		return stream.DecodeMortonI32(s)
	case stream.LogicalComponentwiseDelta:
		return stream.DecodeComponentwiseDeltaI32(s)
	default:
		return nil, fmt.Errorf("geometry: %w: vertex logical1=%d", errs.ErrUnsupported, s.Meta.Encoding.Logical1)
	}
}
