package model

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// meshCount generates unique mesh IDs, which the renderer uses to cache GPU buffers.
var meshCount atomic.Uint64

// Mesh is an indexed triangle list in model space.
// Meshes are immutable after construction; scene nodes share them freely.
type Mesh struct {
	id       uint64
	name     string
	vertices []Vertex
	indices  []uint32
	edges    []uint32
	bounds   Bounds
}

// NewMesh creates a Mesh from triangle data.
//
// Parameters:
//   - name: the mesh identifier, used in logs and GPU labels
//   - vertices: the vertex list
//   - indices: three indices per counter-clockwise front-facing triangle
//   - options: functional options for the mesh
//
// Returns:
//   - *Mesh: the new mesh
func NewMesh(name string, vertices []Vertex, indices []uint32, options ...MeshBuilderOption) *Mesh {
	m := &Mesh{
		id:       meshCount.Add(1),
		name:     name,
		vertices: vertices,
		indices:  indices,
		bounds:   EmptyBounds(),
	}
	for _, v := range vertices {
		m.bounds = m.bounds.Extend(v.Position)
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// ID returns the process-unique mesh identifier.
func (m *Mesh) ID() uint64 {
	return m.id
}

// Name returns the mesh identifier.
func (m *Mesh) Name() string {
	return m.name
}

// Vertices returns the vertex list. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the triangle index list. Callers must not modify it.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Edges returns a line-list index buffer of the unique triangle edges, for wireframe rendering.
// Returns nil unless the mesh was built WithEdges.
func (m *Mesh) Edges() []uint32 {
	return m.edges
}

// Bounds returns the model-space bounding box.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// buildEdges derives the unique edges of a triangle list.
// Vertices that share a position (split for flat shading or UV seams) count as the same corner.
func buildEdges(vertices []Vertex, indices []uint32) []uint32 {
	type key [3]int32
	quant := func(p mgl32.Vec3) key {
		return key{
			int32(math.Round(float64(p[0]) * 1e4)),
			int32(math.Round(float64(p[1]) * 1e4)),
			int32(math.Round(float64(p[2]) * 1e4)),
		}
	}

	canonical := make(map[key]uint32, len(vertices))
	rep := make([]uint32, len(vertices))
	for i, v := range vertices {
		k := quant(v.Position)
		c, ok := canonical[k]
		if !ok {
			c = uint32(i)
			canonical[k] = c
		}
		rep[i] = c
	}

	seen := make(map[[2]uint32]struct{}, len(indices))
	var edges []uint32
	for t := 0; t+2 < len(indices); t += 3 {
		tri := [3]uint32{rep[indices[t]], rep[indices[t+1]], rep[indices[t+2]]}
		for e := range 3 {
			a, b := tri[e], tri[(e+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			if _, ok := seen[[2]uint32{a, b}]; ok {
				continue
			}
			seen[[2]uint32{a, b}] = struct{}{}
			edges = append(edges, a, b)
		}
	}
	return edges
}
