package showcase

import (
	"math"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/internal/pose"
)

// MockupTexture is the renderer texture key of the clock label on the exploded display.
const MockupTexture = "mockup-clock"

// Phone body dimensions in world units.
const (
	phoneWidth  = 1.2
	phoneHeight = 2.4
	phoneDepth  = 0.15
	phoneRadius = 0.1

	// explodedGap is the z distance between the body, the board and the display layer.
	explodedGap = 0.4
)

// Node names, used by Find and by hit testing.
const (
	NodePhone   = "phone"
	NodeBody    = "body"
	NodeBoard   = "board"
	NodeChip    = "chip"
	NodeCircuit = "circuit"
	NodeBezel   = "bezel"
	NodeDisplay = "display"
	NodeNotch   = "notch"
	NodeMockup  = "mockup"
)

// phoneMaterials are shared by every part of one phone.
type phoneMaterials struct {
	body      material.Material
	sideBand  material.Material
	screenOff material.Material
	screenOn  material.Material
	chip      material.Material
	board     material.Material
	circuit   material.Material
	black     material.Material
	display   material.Material
}

func newPhoneMaterials(screenContent bool) phoneMaterials {
	m := phoneMaterials{
		body: material.NewMaterial(material.WithName("body"),
			material.WithColor("#1a1a1a"), material.WithRoughness(0.2), material.WithMetalness(0.8)),
		sideBand: material.NewMaterial(material.WithName("side-band"),
			material.WithColor("#333333"), material.WithRoughness(0.3), material.WithMetalness(1)),
		screenOff: material.NewMaterial(material.WithName("screen-off"),
			material.WithColor("#050505"), material.WithRoughness(0.1), material.WithMetalness(0.1)),
		screenOn: material.NewMaterial(material.WithName("screen-on"),
			material.WithColor("#000000"), material.WithEmissive("#3BAFFF", 0.4), material.WithRoughness(0.2)),
		chip: material.NewMaterial(material.WithName("chip"),
			material.WithColor("#3BAFFF"), material.WithEmissive("#3BAFFF", 0.8),
			material.WithRoughness(0.4), material.WithMetalness(0.9)),
		board: material.NewMaterial(material.WithName("board"),
			material.WithColor("#222222"), material.WithMetalness(0.8), material.WithRoughness(0.5)),
		circuit: material.NewMaterial(material.WithName("circuit"),
			material.WithColor("#444444"), material.WithMetalness(0.6)),
		black: material.NewMaterial(material.WithName("notch"), material.WithBasic(), material.WithColor("#000000")),
	}
	if screenContent {
		m.display = material.NewMaterial(material.WithName("display"), material.WithBasic(),
			material.WithTexture(ScreenTexture), material.WithToneMapped(false))
	}
	return m
}

// Phone is the procedural handset: a posed root with the body, the display layer and, when exploded,
// the board layer pulled apart along z. The outermost node carries the idle float wobble.
type Phone struct {
	float  *scene.Node
	tilt   *scene.Node
	root   *scene.Node
	solver *pose.Solver
	wobble Float

	exploded      bool
	screenContent bool
	baseScale     float64
}

// NewPhone builds the phone graph and its pose solver.
//
// Parameters:
//   - options: functional options configuring the variant
//
// Returns:
//   - *Phone: the phone
func NewPhone(options ...PhoneBuilderOption) *Phone {
	cfg := phoneConfig{
		params:    pose.DefaultParams(),
		baseScale: 1,
		float:     Float{Speed: 1, RotationIntensity: 1, FloatIntensity: 1, Range: [2]float64{-0.1, 0.1}},
	}
	for _, opt := range options {
		opt(&cfg)
	}

	p := &Phone{
		exploded:      cfg.exploded,
		screenContent: cfg.screenContent,
		baseScale:     cfg.baseScale,
		wobble:        cfg.float,
		solver:        pose.NewSolver(cfg.params, cfg.baseScale, cfg.exploded, cfg.screenContent),
	}
	p.root = scene.NewNode(NodePhone, scene.WithScale(float32(cfg.baseScale)))
	p.tilt = scene.NewNode("phone-tilt", scene.WithRotation(0, float32(cfg.tiltY), 0), scene.WithChildren(p.root))
	p.float = scene.NewNode("phone-float", scene.WithChildren(p.tilt))
	p.build(newPhoneMaterials(cfg.screenContent))
	return p
}

func (p *Phone) build(m phoneMaterials) {
	gap := float32(0)
	if p.exploded {
		gap = explodedGap
	}

	body := scene.NewNode(NodeBody,
		scene.WithPosition(0, 0, -gap),
		scene.WithMesh(model.NewRoundedBox(phoneWidth, phoneHeight, phoneDepth, phoneRadius, 4), m.body))
	p.root.Add(body)

	if p.exploded {
		p.root.Add(scene.NewNode("board-layer", scene.WithChildren(
			scene.NewNode(NodeBoard, scene.WithPosition(0, 0.2, 0),
				scene.WithMesh(model.NewBox(0.8, 1.2, 0.02), m.board)),
			scene.NewNode(NodeChip, scene.WithPosition(0, 0.2, 0.02),
				scene.WithMesh(model.NewBox(0.3, 0.3, 0.02), m.chip)),
			scene.NewNode(NodeCircuit, scene.WithPosition(0.2, -0.4, 0),
				scene.WithMesh(model.NewBox(0.4, 0.6, 0.01), m.circuit)),
		)))
	}

	displayMat := m.display
	if displayMat == nil {
		displayMat = m.screenOff
		if p.exploded {
			displayMat = m.screenOn
		}
	}

	screen := scene.NewNode("screen-layer", scene.WithPosition(0, 0, gap),
		scene.WithChildren(
			scene.NewNode(NodeBezel,
				scene.WithMesh(model.NewRoundedBox(phoneWidth, phoneHeight, 0.02, phoneRadius, 4), m.sideBand)),
			scene.NewNode(NodeDisplay, scene.WithPosition(0, 0, 0.011),
				scene.WithMesh(model.NewPlane(phoneWidth-0.1, phoneHeight-0.1), displayMat)),
			scene.NewNode(NodeNotch, scene.WithPosition(0, phoneHeight/2-0.15, 0.012),
				scene.WithMesh(model.NewCapsule(0.06, 0.2, 4, 8), m.black),
				scene.WithChildren(scene.NewNode("notch-bar",
					scene.WithRotation(0, 0, math.Pi/2),
					scene.WithMesh(model.NewCapsule(0.06, 0.25, 4, 8), m.black)))),
		))
	if p.exploded && !p.screenContent {
		screen.Add(newMockup())
	}
	p.root.Add(screen)
}

// newMockup is the placeholder UI on a display without live content: a clock label and an app tile.
func newMockup() *scene.Node {
	accent := "#3BAFFF"
	return scene.NewNode(NodeMockup, scene.WithPosition(0, 0, 0.02), scene.WithScale(0.8),
		scene.WithChildren(
			scene.NewNode("mockup-clock", scene.WithPosition(0, 0.4, 0.005), scene.WithRenderOrder(2),
				scene.WithMesh(model.NewPlane(0.8, 0.4), material.NewMaterial(
					material.WithName("mockup-clock"), material.WithBasic(),
					material.WithTexture(MockupTexture), material.WithOpacity(1), material.WithToneMapped(false)))),
			scene.NewNode("mockup-panel", scene.WithPosition(0, -0.2, 0), scene.WithRenderOrder(1),
				scene.WithMesh(model.NewPlane(0.8, 0.8), material.NewMaterial(
					material.WithName("mockup-panel"), material.WithBasic(),
					material.WithColor(accent), material.WithOpacity(0.1)))),
			scene.NewNode("mockup-tile", scene.WithPosition(0, -0.2, 0.01),
				scene.WithMesh(model.NewPlane(0.2, 0.2), material.NewMaterial(
					material.WithName("mockup-tile"), material.WithBasic(), material.WithColor(accent)))),
		))
}

// Node returns the outermost node to attach to a scene.
func (p *Phone) Node() *scene.Node {
	return p.float
}

// Root returns the posed node.
func (p *Phone) Root() *scene.Node {
	return p.root
}

// Solver returns the pose solver driving the root.
func (p *Phone) Solver() *pose.Solver {
	return p.solver
}

// Exploded reports whether the layers are pulled apart.
func (p *Phone) Exploded() bool {
	return p.exploded
}

// ScreenContent reports whether the display shows the animated screen texture.
func (p *Phone) ScreenContent() bool {
	return p.screenContent
}

// Owns reports whether n is part of this phone. Hits on any part count as hits on the phone.
//
// Parameters:
//   - n: a node returned by a raycast
//
// Returns:
//   - bool: true if n is the root or one of its descendants
func (p *Phone) Owns(n *scene.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n == p.root {
			return true
		}
	}
	return false
}

// Update steps the pose solver and writes the pose and float wobble into the graph.
//
// Parameters:
//   - in: this frame's input sample
//   - dt: the frame interval in seconds
//
// Returns:
//   - pose.State: the new pose
func (p *Phone) Update(in pose.Input, dt float64) pose.State {
	st := p.solver.Step(in, dt)
	p.Apply(st)
	p.wobble.Apply(p.float, in.Elapsed)
	return st
}

// Apply writes a pose into the root node.
//
// Parameters:
//   - st: the pose to show
func (p *Phone) Apply(st pose.State) {
	p.root.Rotation[0] = float32(st.Pitch)
	p.root.Rotation[1] = float32(common.WrapAngle(st.Yaw))
	p.root.Rotation[2] = float32(st.Roll)
	p.root.SetUniformScale(float32(st.Scale))
}
