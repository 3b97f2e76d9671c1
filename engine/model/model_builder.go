package model

// MeshBuilderOption is a functional option for configuring a Mesh during construction.
type MeshBuilderOption func(m *Mesh)

// WithEdges derives the wireframe edge list from the triangles.
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithEdges() MeshBuilderOption {
	return func(m *Mesh) {
		m.edges = buildEdges(m.vertices, m.indices)
	}
}
