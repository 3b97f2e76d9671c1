package scene

import (
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is an element of the scene graph: a transform with an optional mesh and children.
// Rotation is Euler angles in radians applied in X, Y, Z order (intrinsic), matching the usual
// three-axis convention where the matrix is Rx * Ry * Rz.
//
// Nodes are not safe for concurrent mutation; the engine mutates and renders them on one goroutine.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	Mesh     *model.Mesh
	Material material.Material

	// RenderOrder overrides depth sorting among transparent items; lower draws first.
	RenderOrder int

	parent   *Node
	children []*Node
}

// NewNode creates a visible node with identity transform and applies the options.
//
// Parameters:
//   - name: the node name, used by Find
//   - options: functional options configuring the node
//
// Returns:
//   - *Node: the new node
func NewNode(name string, options ...NodeBuilderOption) *Node {
	n := &Node{
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// Add attaches children to the node, detaching them from any previous parent.
//
// Parameters:
//   - children: the nodes to attach
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child from the node. It is a no-op if child is not a direct child.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns the direct children. Callers must not modify the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetUniformScale sets the same scale on all three axes.
func (n *Node) SetUniformScale(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// LocalMatrix returns the node transform relative to its parent: T * Rx * Ry * Rz * S.
//
// Returns:
//   - mgl32.Mat4: the local transform
func (n *Node) LocalMatrix() mgl32.Mat4 {
	r := mgl32.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	return mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).
		Mul4(r).
		Mul4(mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// WorldMatrix returns the node transform in world space.
//
// Returns:
//   - mgl32.Mat4: the product of all ancestor local transforms and this one
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Find returns the first node in this subtree (depth first, including n) with the given name.
//
// Parameters:
//   - name: the node name to look for
//
// Returns:
//   - *Node: the node, or nil if none matches
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits the visible subtree depth first with each node's world matrix.
// Invisible nodes and their descendants are skipped.
//
// Parameters:
//   - parentWorld: the world matrix of n's parent (identity for a root)
//   - fn: called for each visible node
func (n *Node) Walk(parentWorld mgl32.Mat4, fn func(node *Node, world mgl32.Mat4)) {
	if !n.Visible {
		return
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.Walk(world, fn)
	}
}

// WorldBounds returns the world-space box enclosing every visible mesh in the subtree.
//
// Returns:
//   - model.Bounds: the enclosing box, empty if the subtree has no visible meshes
func (n *Node) WorldBounds() model.Bounds {
	b := model.EmptyBounds()
	parent := mgl32.Ident4()
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	}
	n.Walk(parent, func(node *Node, world mgl32.Mat4) {
		if node.Mesh != nil {
			b = b.Union(node.Mesh.Bounds().Transform(world))
		}
	})
	return b
}
