package scene

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// rayEpsilon rejects near-parallel triangles and self hits at the ray origin.
const rayEpsilon = 1e-7

// Hit is one intersection of a pick ray with a mesh.
type Hit struct {
	Node     *Node
	Point    mgl32.Vec3
	Distance float32
}

// Ray is a world-space half line.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayFromNDC unprojects a viewport NDC position through an inverse view-projection matrix.
// The ray starts on the near plane and points at the far plane.
//
// Parameters:
//   - viewProj: the camera view-projection matrix with WebGPU depth range
//   - ndcX, ndcY: the position in NDC, y up
//
// Returns:
//   - Ray: the normalized pick ray
//   - bool: false when the matrix is singular
func RayFromNDC(viewProj mgl32.Mat4, ndcX, ndcY float32) (Ray, bool) {
	if viewProj.Det() == 0 {
		return Ray{}, false
	}
	inv := viewProj.Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 0}, inv)
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 1}, inv)
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

func (s *scene) Raycast(ndcX, ndcY float32) []Hit {
	ray, ok := RayFromNDC(s.cam.ViewProjectionMatrix(), ndcX, ndcY)
	if !ok {
		return nil
	}
	var hits []Hit
	s.root.Walk(mgl32.Ident4(), func(n *Node, world mgl32.Mat4) {
		if n.Mesh == nil {
			return
		}
		if hit, ok := intersectMesh(ray, n.Mesh, world); ok {
			hit.Node = n
			hits = append(hits, hit)
		}
	})
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

// intersectMesh returns the nearest intersection of a world-space ray with a mesh placed by world.
// The ray is moved into model space so the vertex data is used untransformed.
func intersectMesh(ray Ray, mesh *model.Mesh, world mgl32.Mat4) (Hit, bool) {
	if world.Det() == 0 {
		return Hit{}, false
	}
	inv := world.Inv()
	origin := mgl32.TransformCoordinate(ray.Origin, inv)
	dir := mgl32.TransformNormal(ray.Direction, inv)
	local := Ray{Origin: origin, Direction: dir}

	if _, ok := intersectBounds(local, mesh.Bounds()); !ok {
		return Hit{}, false
	}

	verts := mesh.Vertices()
	idx := mesh.Indices()
	best := float32(-1)
	for i := 0; i+2 < len(idx); i += 3 {
		t, ok := intersectTriangle(local, verts[idx[i]].Position, verts[idx[i+1]].Position, verts[idx[i+2]].Position)
		if ok && (best < 0 || t < best) {
			best = t
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	point := mgl32.TransformCoordinate(local.At(best), world)
	return Hit{Point: point, Distance: point.Sub(ray.Origin).Len()}, true
}

// intersectBounds is the slab test against an axis-aligned box.
// It returns the entry distance, clamped to zero when the origin is inside.
func intersectBounds(ray Ray, b model.Bounds) (float32, bool) {
	if b.Empty() {
		return 0, false
	}
	tmin, tmax := float32(0), float32(3.4e38)
	for axis := range 3 {
		o, d := ray.Origin[axis], ray.Direction[axis]
		lo, hi := b.Min[axis], b.Max[axis]
		if d > -rayEpsilon && d < rayEpsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// intersectTriangle is the Möller-Trumbore test. Both faces count as hits.
func intersectTriangle(ray Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det
	s := ray.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * invDet
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}
