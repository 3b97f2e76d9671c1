package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh vertex in model space.
type Vertex struct {
	// Position is the vertex position.
	Position mgl32.Vec3

	// Normal is the unit surface normal used for lighting.
	Normal mgl32.Vec3

	// UV is the texture coordinate, origin top-left.
	UV mgl32.Vec2
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns an inverted box that any Extend call replaces.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Empty reports whether the box contains no points.
func (b Bounds) Empty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows the box to contain p.
//
// Parameters:
//   - p: the point to include
//
// Returns:
//   - Bounds: the grown box
func (b Bounds) Extend(p mgl32.Vec3) Bounds {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.Empty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corners returns the eight corners of the box.
//
// Returns:
//   - [8]mgl32.Vec3: the corners, in no particular order
func (b Bounds) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range 8 {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out[i] = c
	}
	return out
}

// Transform returns the axis-aligned box enclosing b after transformation by m.
//
// Parameters:
//   - m: the affine transform
//
// Returns:
//   - Bounds: the enclosing box in the transformed space
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	if b.Empty() {
		return b
	}
	out := EmptyBounds()
	for _, c := range b.Corners() {
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}
