// Package celestial implements a planet or moon as a scene behavior
package celestial

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/orrery/animation"
	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/settings"
	"github.com/lixenwraith/orrery/vmath"
)

// InfoCardHeight places the card above the body, in units of the body scale
const InfoCardHeight = 0.55

// Config describes one body
type Config struct {
	Name                  string
	Scale                 float64
	OrbitDegreesPerSecond float64
	AxisTilt              float64

	Settings *settings.SpeedSettings
	Model    *asset.Pending[asset.Visual]
	Cards    asset.Loader

	Logger   hclog.Logger
	Recorder animation.Recorder
	// OnToggle is told about every info card toggle
	OnToggle func(name string, visible bool)
}

// Body composes the counter-orbit, the spinning visual and the info card
// of one orbiting body. The sub-hierarchy is built on first activation and
// kept for the lifetime of the body
type Body struct {
	scene.BaseBehavior
	cfg    Config
	logger hclog.Logger

	infoCard *scene.Node
	card     *asset.Pending[asset.Card]

	counterOrbitNode *scene.Node
	counterOrbit     *animation.OrbitAnimator
	visualNode       *scene.Node
	spin             *animation.OrbitAnimator
}

// New validates cfg and returns an unattached body behavior
func New(cfg Config) *Body {
	if cfg.Settings == nil {
		panic(fmt.Sprintf("celestial: body %q has no speed settings", cfg.Name))
	}
	if !(cfg.OrbitDegreesPerSecond > 0) {
		panic(fmt.Sprintf("celestial: body %q needs a positive orbit speed, got %v", cfg.Name, cfg.OrbitDegreesPerSecond))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Body{cfg: cfg, logger: logger.With("body", cfg.Name)}
}

// NewNode wraps a new body in a scene node
func NewNode(cfg Config) (*scene.Node, *Body) {
	b := New(cfg)
	return scene.NewBehaviorNode(cfg.Name, b), b
}

func (b *Body) Name() string                           { return b.cfg.Name }
func (b *Body) Scale() float64                         { return b.cfg.Scale }
func (b *Body) InfoCard() *scene.Node                  { return b.infoCard }
func (b *Body) CounterOrbit() *animation.OrbitAnimator { return b.counterOrbit }
func (b *Body) Spin() *animation.OrbitAnimator         { return b.spin }
func (b *Body) Visual() *scene.Node                    { return b.visualNode }

// CardState reports the info card content state, StateFailed once dropped
func (b *Body) CardState() asset.State {
	if b.card == nil {
		return asset.StateLoading
	}
	return b.card.State()
}

// Activate builds the sub-hierarchy once
// Activation outside a scene is a programming error
func (b *Body) Activate(n *scene.Node) {
	if n.Scene() == nil {
		panic(fmt.Sprintf("celestial: body %q activated outside a scene", b.cfg.Name))
	}

	if b.infoCard == nil && b.card == nil {
		b.infoCard = scene.NewNode(b.cfg.Name + "/card")
		b.infoCard.SetEnabled(false)
		b.infoCard.SetLocalPosition(mgl64.Vec3{0, b.cfg.Scale * InfoCardHeight, 0})
		b.infoCard.SetParent(n)
		b.card = b.requestCard()
	}

	if b.visualNode == nil {
		// Cancels the parent orbit so the spin axis keeps its world tilt
		b.counterOrbit = animation.NewOrbitAnimator(b.cfg.Settings, animation.KindOrbit, true, 0)
		b.counterOrbit.SetDegreesPerSecond(b.cfg.OrbitDegreesPerSecond)
		b.counterOrbit.SetRecorder(b.cfg.Recorder)
		b.counterOrbitNode = scene.NewBehaviorNode(b.cfg.Name+"/counter-orbit", b.counterOrbit)
		b.counterOrbitNode.SetParent(n)

		b.spin = animation.NewOrbitAnimator(b.cfg.Settings, animation.KindSpin, false, b.cfg.AxisTilt)
		b.spin.SetRecorder(b.cfg.Recorder)
		b.visualNode = scene.NewBehaviorNode(b.cfg.Name+"/visual", b.spin)
		b.visualNode.SetUniformScale(b.cfg.Scale)
		b.visualNode.SetParent(b.counterOrbitNode)
		b.pollModel()
	}
}

// Tap toggles the info card once its content has loaded
// The tap is always consumed so it never reaches the body this one orbits
func (b *Body) Tap(n *scene.Node, ev scene.TapEvent) bool {
	if b.infoCard == nil || b.infoCard.Renderable() == nil {
		return true
	}
	visible := !b.infoCard.Enabled()
	b.infoCard.SetEnabled(visible)
	b.logger.Debug("info card toggled", "visible", visible)
	if b.cfg.OnToggle != nil {
		b.cfg.OnToggle(b.cfg.Name, visible)
	}
	return true
}

// Update settles pending resources and turns the card toward the camera
func (b *Body) Update(n *scene.Node, ft scene.FrameTime) {
	b.pollModel()
	b.pollCard()

	if b.infoCard == nil || n.Scene() == nil {
		return
	}
	camera := n.Scene().Camera()
	dir := camera.WorldPosition().Sub(b.infoCard.WorldPosition())
	// Camera inside the card keeps the previous facing
	if q, ok := vmath.LookRotation(dir, vmath.AxisY); ok {
		b.infoCard.SetWorldRotation(q)
	}
}

func (b *Body) requestCard() *asset.Pending[asset.Card] {
	if b.cfg.Cards == nil {
		return asset.Ready(asset.Card{Title: b.cfg.Name})
	}
	return b.cfg.Cards.LoadCard(b.cfg.Name)
}

func (b *Body) pollCard() {
	if b.card == nil || b.infoCard == nil || b.infoCard.Renderable() != nil {
		return
	}
	switch b.card.Poll() {
	case asset.StateReady:
		card, _ := b.card.Value()
		b.infoCard.SetRenderable(card)
	case asset.StateFailed:
		// A missing label must not take the orbit down with it
		b.logger.Warn("info card failed to load", "error", b.card.Err())
		b.infoCard.SetParent(nil)
		b.infoCard = nil
	}
}

func (b *Body) pollModel() {
	if b.cfg.Model == nil || b.visualNode == nil || b.visualNode.Renderable() != nil {
		return
	}
	switch b.cfg.Model.Poll() {
	case asset.StateReady:
		v, _ := b.cfg.Model.Value()
		b.visualNode.SetRenderable(v)
	case asset.StateFailed:
		b.logger.Warn("model failed to load", "error", b.cfg.Model.Err())
		b.cfg.Model = nil
	}
}
