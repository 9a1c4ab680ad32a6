// Package errs defines the sentinel error values returned by every package
// in this module. Errors are data: the codec never panics on malformed
// input and never logs; callers receive one of these sentinels, optionally
// wrapped with fmt.Errorf("%w: ...", ...) for additional context.
package errs

import "errors"

var (
	// Truncated input

	// ErrTruncated indicates the input slice ended before a header or payload
	// finished decoding.
	ErrTruncated = errors.New("mlt: truncated input")

	// Invalid tags

	// ErrInvalidStreamType indicates a stream_type byte's high/low nibble did
	// not resolve to a known StreamType/sub-kind combination.
	ErrInvalidStreamType = errors.New("mlt: invalid stream type")
	// ErrInvalidLogicalEncoding indicates the (logical1, logical2) pair packed
	// into the encoding byte is not one of the legal combinations.
	ErrInvalidLogicalEncoding = errors.New("mlt: invalid logical encoding combination")
	// ErrInvalidColumnType indicates a column_type byte is outside the closed
	// set of known column types.
	ErrInvalidColumnType = errors.New("mlt: invalid column type")

	// Unsupported

	// ErrUnsupported indicates a legal tag whose decode/encode path is
	// intentionally unimplemented (ALP physical encoding, FastPFOR requested
	// for 64-bit values, encoding a populated index/triangle buffer).
	ErrUnsupported = errors.New("mlt: unsupported encoding")

	// Arithmetic

	// ErrIntegerOverflow indicates a decoded length or count would overflow
	// the target integer width.
	ErrIntegerOverflow = errors.New("mlt: integer overflow")

	// Shape

	// ErrColumnCountMismatch indicates the declared column count did not
	// match the number of columns actually parsed.
	ErrColumnCountMismatch = errors.New("mlt: column count mismatch")
	// ErrStreamCountMismatch indicates a column's declared stream count did
	// not match the number of streams actually parsed for it.
	ErrStreamCountMismatch = errors.New("mlt: stream count mismatch")
	// ErrLengthNotEven indicates a componentwise-delta stream had an odd
	// number of logical values.
	ErrLengthNotEven = errors.New("mlt: stream length is not even")
	// ErrDeclaredSizeTooLarge indicates a stream declared a num_values or
	// byte_length that would allocate past the caller-configured cap.
	ErrDeclaredSizeTooLarge = errors.New("mlt: declared size exceeds allocation cap")

	// Geometry

	// ErrGeometryOutOfBounds indicates an offset referenced past the end of
	// an array it indexes into.
	ErrGeometryOutOfBounds = errors.New("mlt: geometry offset out of bounds")
	// ErrGeometryVertexOutOfBounds indicates a vertex index referenced past
	// the end of the vertex buffer.
	ErrGeometryVertexOutOfBounds = errors.New("mlt: geometry vertex index out of bounds")
	// ErrNoGeometryOffsets indicates a mixed-type geometry column needed a
	// root (geometry) offsets stream that was not present.
	ErrNoGeometryOffsets = errors.New("mlt: geometry column has no geometry offsets")
	// ErrNoPartOffsets indicates a geometry type needed a part-offsets level
	// that was not present in the pyramid.
	ErrNoPartOffsets = errors.New("mlt: geometry column has no part offsets")
	// ErrNoRingOffsets indicates a geometry type needed a ring-offsets level
	// that was not present in the pyramid.
	ErrNoRingOffsets = errors.New("mlt: geometry column has no ring offsets")
	// ErrUnexpectedOffsetCombination indicates types[i] requires a pyramid
	// level that the column does not carry.
	ErrUnexpectedOffsetCombination = errors.New("mlt: geometry type requires an offset level not present")

	// Property

	// ErrEncodingInstructionCountMismatch indicates a batch property encode's
	// instruction array length did not match the input property array length.
	ErrEncodingInstructionCountMismatch = errors.New("mlt: encoding instruction count mismatch")
	// ErrTriedToEncodeOptionalStruct indicates a struct column was configured
	// as optional; structs carry no column-level presence, only per-child.
	ErrTriedToEncodeOptionalStruct = errors.New("mlt: struct columns cannot be optional")
	// ErrUnexpectedStreamType indicates a stream's parsed role did not match
	// what the column type requires at that position.
	ErrUnexpectedStreamType = errors.New("mlt: unexpected stream type for column")
	// ErrDuplicateStream indicates two streams of the same semantic role
	// were parsed for a single column.
	ErrDuplicateStream = errors.New("mlt: duplicate stream role in column")

	// Archive envelope

	// ErrArchiveLengthMismatch indicates an archive envelope's decompressed
	// payload did not match the original length it declared.
	ErrArchiveLengthMismatch = errors.New("mlt: archive decompressed length mismatch")
)
