package scene

import (
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(n *Node)

// WithPosition sets the node position relative to its parent.
//
// Parameters:
//   - x, y, z: the position
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *Node) {
		n.Position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the node's Euler rotation in radians.
//
// Parameters:
//   - x, y, z: rotation about each axis
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(x, y, z float32) NodeBuilderOption {
	return func(n *Node) {
		n.Rotation = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets a uniform scale.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(s float32) NodeBuilderOption {
	return func(n *Node) {
		n.SetUniformScale(s)
	}
}

// WithMesh attaches a mesh and the material it is drawn with.
//
// Parameters:
//   - mesh: the geometry
//   - mat: the material
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMesh(mesh *model.Mesh, mat material.Material) NodeBuilderOption {
	return func(n *Node) {
		n.Mesh = mesh
		n.Material = mat
	}
}

// WithVisible sets the initial visibility.
//
// Parameters:
//   - visible: false to hide the node and its subtree
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *Node) {
		n.Visible = visible
	}
}

// WithRenderOrder sets the transparent draw order override.
//
// Parameters:
//   - order: lower values draw first
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRenderOrder(order int) NodeBuilderOption {
	return func(n *Node) {
		n.RenderOrder = order
	}
}

// WithChildren attaches child nodes.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...*Node) NodeBuilderOption {
	return func(n *Node) {
		n.Add(children...)
	}
}
