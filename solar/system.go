// Package solar assembles the sun, planets and moon into one scene hierarchy
package solar

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/orrery/animation"
	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/celestial"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/settings"
)

// Node names of the fixed part of the hierarchy
const (
	BaseName      = "base"
	SunVisualName = "Sun/visual"
	ControlsName  = "Controls"
)

// Layout of the fixed part, in scene units
var (
	SunPosition      = mgl64.Vec3{0, 0.5, 0}
	ControlsPosition = mgl64.Vec3{0, 0.25, 0}
)

// SunScale is the uniform scale of the sun visual
const SunScale = 0.5

// Entry is one orbiting body and the anchor that carries it around its parent
type Entry struct {
	Spec   BodySpec
	Node   *scene.Node
	Body   *celestial.Body
	Anchor *scene.Node
	Orbit  *animation.OrbitAnimator
}

// ControlPanel is the renderable of the controls node
type ControlPanel struct {
	Orbit    *settings.Slider
	Rotation *settings.Slider
}

// System is a built solar system; attach Root to a scene to start it
type System struct {
	Root      *scene.Node
	Sun       *scene.Node
	SunVisual *scene.Node
	Controls  *scene.Node
	Bodies    []*Entry

	Settings *settings.SpeedSettings
	Panel    *ControlPanel

	byName map[string]*Entry
}

// Body returns the named body and its orbit anchor
func (s *System) Body(name string) (*Entry, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// ToggleFunc observes info card and control panel visibility changes
type ToggleFunc func(name string, visible bool)

type builder struct {
	logger   hclog.Logger
	recorder animation.Recorder
	auScale  float64
	bodies   []BodySpec
	onToggle ToggleFunc
}

// Option configures BuildSolarSystem
type Option func(*builder)

// WithLogger sets the parent logger for bodies
func WithLogger(l hclog.Logger) Option {
	return func(b *builder) { b.logger = l }
}

// WithRecorder observes every animator in the system
func WithRecorder(r animation.Recorder) Option {
	return func(b *builder) { b.recorder = r }
}

// WithAUScale overrides the scene distance of one AU
func WithAUScale(scale float64) Option {
	return func(b *builder) { b.auScale = scale }
}

// WithBodies replaces the body table; parents must precede their moons
func WithBodies(bodies []BodySpec) Option {
	return func(b *builder) { b.bodies = bodies }
}

// WithToggle is notified of every card or control panel toggle
func WithToggle(fn ToggleFunc) Option {
	return func(b *builder) { b.onToggle = fn }
}

// BuildSolarSystem composes the hierarchy
// base -> sun -> anchor -> body -> counter-orbit -> visual, moons under their planet
// Panics on an invalid body table or AU scale
func BuildSolarSystem(s *settings.SpeedSettings, loader asset.Loader, opts ...Option) *System {
	if s == nil {
		panic("solar: nil speed settings")
	}
	b := &builder{
		logger:  hclog.NewNullLogger(),
		auScale: AUToMeters,
		bodies:  DefaultBodies,
	}
	for _, opt := range opts {
		opt(b)
	}
	if !(b.auScale > 0) || math.IsInf(b.auScale, 1) {
		panic(fmt.Sprintf("solar: AU scale must be positive and finite, got %v", b.auScale))
	}

	sys := &System{
		Settings: s,
		byName:   make(map[string]*Entry, len(b.bodies)),
	}

	sys.Root = scene.NewNode(BaseName)

	sys.Sun = scene.NewNode(SunName)
	sys.Sun.SetLocalPosition(SunPosition)
	sys.Sun.SetParent(sys.Root)

	sys.SunVisual = scene.NewBehaviorNode(SunVisualName, newModelBinder(visualOf(loader, SunName), b.logger))
	sys.SunVisual.SetUniformScale(SunScale)
	sys.SunVisual.SetParent(sys.Sun)

	sys.Panel = &ControlPanel{
		Orbit:    settings.OrbitSlider(s),
		Rotation: settings.RotationSlider(s),
	}
	sys.Controls = scene.NewNode(ControlsName)
	sys.Controls.SetLocalPosition(ControlsPosition)
	sys.Controls.SetRenderable(sys.Panel)
	sys.Controls.SetParent(sys.Sun)

	sys.SunVisual.SetTapListener(func(*scene.Node, scene.TapEvent) {
		visible := !sys.Controls.Enabled()
		sys.Controls.SetEnabled(visible)
		b.logger.Debug("control panel toggled", "visible", visible)
		if b.onToggle != nil {
			b.onToggle(ControlsName, visible)
		}
	})

	centers := map[string]*scene.Node{SunName: sys.Sun}
	for _, spec := range b.bodies {
		center, ok := centers[spec.Parent]
		if !ok {
			panic(fmt.Sprintf("solar: body %q orbits unknown parent %q", spec.Name, spec.Parent))
		}
		if _, dup := sys.byName[spec.Name]; dup {
			panic(fmt.Sprintf("solar: duplicate body %q", spec.Name))
		}

		e := b.buildBody(s, loader, spec)
		e.Anchor.SetParent(center)

		centers[spec.Name] = e.Node
		sys.byName[spec.Name] = e
		sys.Bodies = append(sys.Bodies, e)
	}

	return sys
}

func (b *builder) buildBody(s *settings.SpeedSettings, loader asset.Loader, spec BodySpec) *Entry {
	orbit := animation.NewOrbitAnimator(s, animation.KindOrbit, false, 0)
	orbit.SetDegreesPerSecond(spec.OrbitDegreesPerSecond)
	orbit.SetRecorder(b.recorder)
	anchor := scene.NewBehaviorNode(spec.Name+"/orbit", orbit)

	node, body := celestial.NewNode(celestial.Config{
		Name:                  spec.Name,
		Scale:                 spec.Scale,
		OrbitDegreesPerSecond: spec.OrbitDegreesPerSecond,
		AxisTilt:              spec.AxisTilt,
		Settings:              s,
		Model:                 visualOf(loader, spec.Name),
		Cards:                 loader,
		Logger:                b.logger.Named("body"),
		Recorder:              b.recorder,
		OnToggle:              b.onToggle,
	})
	node.SetLocalPosition(mgl64.Vec3{spec.DistanceAU * b.auScale, 0, 0})
	node.SetParent(anchor)

	return &Entry{Spec: spec, Node: node, Body: body, Anchor: anchor, Orbit: orbit}
}

func visualOf(loader asset.Loader, name string) *asset.Pending[asset.Visual] {
	if loader == nil {
		return nil
	}
	return loader.LoadVisual(name)
}

// modelBinder assigns a loaded visual to its node
type modelBinder struct {
	scene.BaseBehavior
	model  *asset.Pending[asset.Visual]
	logger hclog.Logger
}

func newModelBinder(model *asset.Pending[asset.Visual], logger hclog.Logger) *modelBinder {
	return &modelBinder{model: model, logger: logger}
}

func (m *modelBinder) Activate(n *scene.Node) { m.poll(n) }

func (m *modelBinder) Update(n *scene.Node, ft scene.FrameTime) { m.poll(n) }

func (m *modelBinder) poll(n *scene.Node) {
	if m.model == nil || n.Renderable() != nil {
		return
	}
	switch m.model.Poll() {
	case asset.StateReady:
		v, _ := m.model.Value()
		n.SetRenderable(v)
	case asset.StateFailed:
		m.logger.Warn("model failed to load", "node", n.Name(), "error", m.model.Err())
		m.model = nil
	}
}

// Sliders lists the panel sliders top to bottom
func (p *ControlPanel) Sliders() []*settings.Slider {
	return []*settings.Slider{p.Orbit, p.Rotation}
}
