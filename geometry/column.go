package geometry

// Column is a layer's single decoded geometry column (spec.md §3): a
// geometry type per feature, the reconstructed offset pyramid, and the flat
// vertex buffer. GeometryOffsets/PartOffsets/RingOffsets are nil when the
// column's type mix doesn't need that level at all; VertexOffsets is
// non-nil only when vertices are stored deduplicated. IndexBuffer and
// Triangles are reserved, decode-and-carry-only fields (spec.md's
// "Non-goals" explicitly exclude generating them; a populated encode
// attempt fails with ErrUnsupported).
type Column struct {
	Types []Type

	GeometryOffsets []uint32
	PartOffsets     []uint32
	RingOffsets     []uint32

	// VertexOffsets indexes into Vertices when vertices are dictionary
	// deduplicated; nil when Vertices is already feature-order flat.
	VertexOffsets []uint32

	// Vertices is the flat interleaved (x, y) buffer. When VertexOffsets is
	// present, an index space entry i refers to Vertices[2*VertexOffsets[i] :
	// 2*VertexOffsets[i]+2].
	Vertices []int32

	IndexBuffer []uint32
	Triangles   []uint32
}

// vertexAt returns the (x, y) pair at vertex index i, resolving through
// VertexOffsets when the column stores deduplicated vertices.
func (c Column) vertexAt(i uint32) (x, y int32, err error) {
	idx := i

	if c.VertexOffsets != nil {
		if int(i) >= len(c.VertexOffsets) {
			return 0, 0, oobVertex(i, len(c.VertexOffsets))
		}

		idx = c.VertexOffsets[i]
	}

	if int(idx)*2+1 >= len(c.Vertices) {
		return 0, 0, oobVertex(idx, len(c.Vertices)/2)
	}

	return c.Vertices[idx*2], c.Vertices[idx*2+1], nil
}
