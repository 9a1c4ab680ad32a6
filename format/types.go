// Package format defines the small closed enumerations shared by the
// archive envelope. The core MLT stream/column/geometry packages define
// their own tag enumerations (stream.PhysicalEncoding, stream.LogicalEncoding,
// column.Type, geometry.Type) next to the wire layout they describe; this
// package only holds the outer-envelope compression tag, which is not part
// of the MLT wire format itself (spec.md §6) but belongs to the ambient
// archive layer added in SPEC_FULL.md §D.
package format

// CompressionType identifies the algorithm used to compress an archived
// tile's payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
