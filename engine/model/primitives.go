package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewBox creates an axis-aligned box centered on the origin.
//
// Parameters:
//   - width, height, depth: the box extents along X, Y, Z
//
// Returns:
//   - *Mesh: 24 vertices, 12 triangles
func NewBox(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	samples := [3][]float32{
		{-half[0], half[0]},
		{-half[1], half[1]},
		{-half[2], half[2]},
	}
	vertices, indices := boxFaces(half, samples, func(p, n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
		return p, n
	})
	return NewMesh("box", vertices, indices)
}

// NewRoundedBox creates a box whose edges and corners are rounded.
// The radius is limited per axis to the half-extent, so thin slabs keep their rounded outline
// in the wide axes while the corner profile flattens in the thin one.
//
// Parameters:
//   - width, height, depth: the box extents along X, Y, Z
//   - radius: the corner radius
//   - smoothness: subdivisions per rounded corner (at least 1)
//
// Returns:
//   - *Mesh: the rounded box
func NewRoundedBox(width, height, depth, radius float32, smoothness int) *Mesh {
	smoothness = max(smoothness, 1)
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	var rad, inner mgl32.Vec3
	var samples [3][]float32
	for i := range 3 {
		rad[i] = max(min(radius, half[i]), 0)
		inner[i] = half[i] - rad[i]
		samples[i] = axisSamples(half[i], rad[i], smoothness)
	}

	vertices, indices := boxFaces(half, samples, func(p, n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
		var c, e mgl32.Vec3
		for i := range 3 {
			c[i] = float32(math.Max(math.Min(float64(p[i]), float64(inner[i])), float64(-inner[i])))
			if rad[i] > 0 {
				e[i] = (p[i] - c[i]) / rad[i]
			}
		}
		if e.Len() == 0 {
			return p, n
		}
		e = e.Normalize()
		var pos, normal mgl32.Vec3
		for i := range 3 {
			pos[i] = c[i] + e[i]*rad[i]
			if rad[i] > 0 {
				normal[i] = e[i] / rad[i]
			}
		}
		if normal.Len() == 0 {
			return pos, n
		}
		return pos, normal.Normalize()
	})
	return NewMesh("rounded_box", vertices, indices)
}

// axisSamples returns face-grid coordinates along one axis: dense across each rounded corner, none across the flat middle.
func axisSamples(h, r float32, steps int) []float32 {
	if r <= 0 {
		return []float32{-h, h}
	}
	out := make([]float32, 0, 2*(steps+1))
	for i := 0; i <= steps; i++ {
		out = append(out, -h+r*float32(i)/float32(steps))
	}
	for i := 0; i <= steps; i++ {
		v := h - r + r*float32(i)/float32(steps)
		if i == 0 && v <= out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// boxFaces emits a grid on each of the six faces of a box and passes every grid point
// through project, which returns the final position and normal.
func boxFaces(half mgl32.Vec3, samples [3][]float32, project func(p, faceNormal mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3)) ([]Vertex, []uint32) {
	var vertices []Vertex
	var indices []uint32
	for k := range 3 {
		for _, sign := range []float32{1, -1} {
			// The (u, v) axes are ordered so u × v points along the face normal.
			ua, va := (k+1)%3, (k+2)%3
			if sign < 0 {
				ua, va = va, ua
			}
			var faceNormal mgl32.Vec3
			faceNormal[k] = sign

			us, vs := samples[ua], samples[va]
			base := uint32(len(vertices))
			for _, v := range vs {
				for _, u := range us {
					var p mgl32.Vec3
					p[k] = sign * half[k]
					p[ua] = u
					p[va] = v
					pos, n := project(p, faceNormal)
					vertices = append(vertices, Vertex{
						Position: pos,
						Normal:   n,
						UV:       mgl32.Vec2{(u + half[ua]) / (2 * half[ua]), 1 - (v+half[va])/(2*half[va])},
					})
				}
			}
			nu := uint32(len(us))
			for j := uint32(0); j+1 < uint32(len(vs)); j++ {
				for i := uint32(0); i+1 < nu; i++ {
					a := base + j*nu + i
					indices = append(indices, a, a+1, a+nu+1, a, a+nu+1, a+nu)
				}
			}
		}
	}
	return vertices, indices
}

// NewPlane creates a rectangle in the XY plane facing +Z.
// UV (0, 0) is the top-left corner so texture rows map top-down.
//
// Parameters:
//   - width, height: the plane extents
//
// Returns:
//   - *Mesh: 4 vertices, 2 triangles
func NewPlane(width, height float32) *Mesh {
	w, h := width/2, height/2
	n := mgl32.Vec3{0, 0, 1}
	vertices := []Vertex{
		{Position: mgl32.Vec3{-w, h, 0}, Normal: n, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{w, h, 0}, Normal: n, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{w, -h, 0}, Normal: n, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-w, -h, 0}, Normal: n, UV: mgl32.Vec2{0, 1}},
	}
	return NewMesh("plane", vertices, []uint32{3, 2, 1, 3, 1, 0})
}

// NewCircle creates a filled disc in the XY plane facing +Z.
//
// Parameters:
//   - radius: the disc radius
//   - segments: the number of rim segments (at least 3)
//
// Returns:
//   - *Mesh: the disc
func NewCircle(radius float32, segments int) *Mesh {
	segments = max(segments, 3)
	n := mgl32.Vec3{0, 0, 1}
	vertices := []Vertex{{Normal: n, UV: mgl32.Vec2{0.5, 0.5}}}
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, y := float32(math.Cos(theta)), float32(math.Sin(theta))
		vertices = append(vertices, Vertex{
			Position: mgl32.Vec3{x * radius, y * radius, 0},
			Normal:   n,
			UV:       mgl32.Vec2{0.5 + x/2, 0.5 - y/2},
		})
	}
	indices := make([]uint32, 0, segments*3)
	for i := uint32(1); i <= uint32(segments); i++ {
		indices = append(indices, 0, i, i+1)
	}
	return NewMesh("circle", vertices, indices)
}

// NewRing creates a flat annulus in the XY plane facing +Z.
//
// Parameters:
//   - inner: the inner radius
//   - outer: the outer radius
//   - segments: the number of segments around the ring (at least 3)
//
// Returns:
//   - *Mesh: the ring
func NewRing(inner, outer float32, segments int) *Mesh {
	segments = max(segments, 3)
	n := mgl32.Vec3{0, 0, 1}
	vertices := make([]Vertex, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, y := float32(math.Cos(theta)), float32(math.Sin(theta))
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			Vertex{Position: mgl32.Vec3{x * inner, y * inner, 0}, Normal: n, UV: mgl32.Vec2{u, 1}},
			Vertex{Position: mgl32.Vec3{x * outer, y * outer, 0}, Normal: n, UV: mgl32.Vec2{u, 0}},
		)
	}
	indices := make([]uint32, 0, segments*6)
	for i := uint32(0); i < uint32(segments); i++ {
		in0, out0, in1, out1 := 2*i, 2*i+1, 2*i+2, 2*i+3
		indices = append(indices, in0, out0, out1, in0, out1, in1)
	}
	return NewMesh("ring", vertices, indices)
}

// latheRow is one horizontal ring of a surface of revolution around Y.
type latheRow struct {
	y, rho   float32 // height and distance from the axis
	ny, nrho float32 // normal components along and away from the axis
}

func lathe(name string, rows []latheRow, radial int) *Mesh {
	radial = max(radial, 3)
	stride := uint32(radial + 1)
	vertices := make([]Vertex, 0, len(rows)*(radial+1))
	for j, r := range rows {
		v := 1 - float32(j)/float32(len(rows)-1)
		for i := 0; i <= radial; i++ {
			phi := 2 * math.Pi * float64(i) / float64(radial)
			s, c := float32(math.Sin(phi)), float32(math.Cos(phi))
			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{r.rho * s, r.y, r.rho * c},
				Normal:   mgl32.Vec3{r.nrho * s, r.ny, r.nrho * c},
				UV:       mgl32.Vec2{float32(i) / float32(radial), v},
			})
		}
	}
	var indices []uint32
	for j := uint32(0); j+1 < uint32(len(rows)); j++ {
		for i := uint32(0); i < uint32(radial); i++ {
			a := j*stride + i
			indices = append(indices, a, a+1, a+stride+1, a, a+stride+1, a+stride)
		}
	}
	return NewMesh(name, vertices, indices)
}

// NewSphere creates a UV sphere centered on the origin.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: segments around the Y axis
//   - heightSegments: segments from pole to pole
//
// Returns:
//   - *Mesh: the sphere
func NewSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	heightSegments = max(heightSegments, 2)
	rows := make([]latheRow, 0, heightSegments+1)
	for j := 0; j <= heightSegments; j++ {
		theta := -math.Pi/2 + math.Pi*float64(j)/float64(heightSegments)
		s, c := float32(math.Sin(theta)), float32(math.Cos(theta))
		rows = append(rows, latheRow{y: radius * s, rho: radius * c, ny: s, nrho: c})
	}
	return lathe("sphere", rows, widthSegments)
}

// NewCapsule creates a capsule along Y: a cylinder of the given length capped by hemispheres.
// The overall height is length + 2*radius.
//
// Parameters:
//   - radius: the cap and cylinder radius
//   - length: the length of the cylindrical middle
//   - capSegments: rings per hemisphere
//   - radialSegments: segments around the Y axis
//
// Returns:
//   - *Mesh: the capsule
func NewCapsule(radius, length float32, capSegments, radialSegments int) *Mesh {
	capSegments = max(capSegments, 1)
	rows := make([]latheRow, 0, 2*(capSegments+1))
	for _, hemi := range []struct {
		from, offset float64
	}{
		{-math.Pi / 2, float64(-length / 2)},
		{0, float64(length / 2)},
	} {
		for j := 0; j <= capSegments; j++ {
			theta := hemi.from + math.Pi/2*float64(j)/float64(capSegments)
			s, c := math.Sin(theta), math.Cos(theta)
			rows = append(rows, latheRow{
				y:    float32(hemi.offset + float64(radius)*s),
				rho:  radius * float32(c),
				ny:   float32(s),
				nrho: float32(c),
			})
		}
	}
	return lathe("capsule", rows, radialSegments)
}

// NewIcosahedron creates a flat-shaded regular icosahedron with its wireframe edge list.
//
// Parameters:
//   - radius: the circumscribed radius
//
// Returns:
//   - *Mesh: 60 vertices, 20 triangles, 30 edges
func NewIcosahedron(radius float32) *Mesh {
	t := float32((1 + math.Sqrt(5)) / 2)
	corners := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range corners {
		corners[i] = corners[i].Normalize().Mul(radius)
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	vertices := make([]Vertex, 0, len(faces)*3)
	indices := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if n.Dot(a.Add(b).Add(c)) < 0 {
			b, c = c, b
			n = n.Mul(-1)
		}
		base := uint32(len(vertices))
		for i, p := range []mgl32.Vec3{a, b, c} {
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   n,
				UV:       mgl32.Vec2{float32(i) / 2, float32(i % 2)},
			})
		}
		indices = append(indices, base, base+1, base+2)
	}
	return NewMesh("icosahedron", vertices, indices, WithEdges())
}
