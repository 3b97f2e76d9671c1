package showcase

import (
	"math"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
)

// Float is an idle hover wobble: a slow bob along y with a small rocking rotation.
type Float struct {
	Speed             float64
	RotationIntensity float64
	FloatIntensity    float64

	// Range is the y travel at FloatIntensity 1.
	Range [2]float64

	// Offset shifts the phase so several floating objects do not move in lockstep.
	Offset float64
}

// Pose returns the wobble's translation and rotation at the given time.
//
// Parameters:
//   - elapsed: seconds since the animation started
//
// Returns:
//   - y: the vertical offset
//   - rot: the Euler rotation in radians
func (f Float) Pose(elapsed float64) (y float64, rot [3]float64) {
	t := (f.Offset + elapsed) / 4 * f.Speed
	rot = [3]float64{
		math.Cos(t) / 8 * f.RotationIntensity,
		math.Sin(t) / 8 * f.RotationIntensity,
		math.Sin(t) / 20 * f.RotationIntensity,
	}
	y = common.MapLinear(math.Sin(t)/10, -0.1, 0.1, f.Range[0], f.Range[1]) * f.FloatIntensity
	return y, rot
}

// Apply writes the wobble into a node's position and rotation.
//
// Parameters:
//   - n: the node to move
//   - elapsed: seconds since the animation started
func (f Float) Apply(n *scene.Node, elapsed float64) {
	y, rot := f.Pose(elapsed)
	n.Position[1] = float32(y)
	n.Rotation[0] = float32(rot[0])
	n.Rotation[1] = float32(rot[1])
	n.Rotation[2] = float32(rot[2])
}
