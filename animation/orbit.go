package animation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/settings"
	"github.com/lixenwraith/orrery/vmath"
)

// Kind selects which multiplier scales an animator
type Kind int

const (
	// KindOrbit follows SpeedSettings.OrbitSpeedMultiplier
	KindOrbit Kind = iota
	// KindSpin follows SpeedSettings.RotationSpeedMultiplier
	KindSpin
)

func (k Kind) String() string {
	if k == KindOrbit {
		return "orbit"
	}
	return "spin"
}

// DefaultDegreesPerSecond is the base rate of an animator that was never given one
const DefaultDegreesPerSecond = 90.0

// keyframeCount closes a full turn in three 120 degree segments
// Each segment stays under 180 degrees so slerp takes the intended way round
const keyframeCount = 4

// State is the lifecycle position of an OrbitAnimator
type State int

const (
	StateInactive State = iota
	StateAnimating
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateAnimating:
		return "animating"
	case StatePaused:
		return "paused"
	default:
		return "inactive"
	}
}

// Recorder observes animator lifecycle, e.g. for metrics
type Recorder interface {
	AnimatorStarted(kind string)
	AnimatorStopped(kind string)
	AnimatorRetimed(kind string)
}

// OrbitAnimator rotates its node continuously around a tilted axis
type OrbitAnimator struct {
	scene.BaseBehavior

	settings  *settings.SpeedSettings
	kind      Kind
	clockwise bool
	tiltDeg   float64

	degreesPerSecond float64
	lastMultiplier   float64

	timeline *Timeline
	recorder Recorder
}

// NewOrbitAnimator creates an inactive animator at DefaultDegreesPerSecond
func NewOrbitAnimator(s *settings.SpeedSettings, kind Kind, clockwise bool, axisTiltDeg float64) *OrbitAnimator {
	if s == nil {
		panic("animation: nil speed settings")
	}
	return &OrbitAnimator{
		settings:         s,
		kind:             kind,
		clockwise:        clockwise,
		tiltDeg:          axisTiltDeg,
		degreesPerSecond: DefaultDegreesPerSecond,
		lastMultiplier:   settings.DefaultMultiplier,
	}
}

// SetDegreesPerSecond sets the base angular rate at multiplier 1
// Takes effect on the next activation
func (a *OrbitAnimator) SetDegreesPerSecond(dps float64) {
	if !(dps > 0) || math.IsInf(dps, 1) {
		panic(fmt.Sprintf("animation: base speed must be positive and finite, got %v", dps))
	}
	a.degreesPerSecond = dps
}

// SetRecorder installs r; nil disables recording
func (a *OrbitAnimator) SetRecorder(r Recorder) {
	a.recorder = r
}

func (a *OrbitAnimator) Kind() Kind                { return a.kind }
func (a *OrbitAnimator) Clockwise() bool           { return a.clockwise }
func (a *OrbitAnimator) AxisTilt() float64         { return a.tiltDeg }
func (a *OrbitAnimator) DegreesPerSecond() float64 { return a.degreesPerSecond }

// Timeline returns the running timeline, nil while inactive
func (a *OrbitAnimator) Timeline() *Timeline {
	return a.timeline
}

// State reports the lifecycle position
func (a *OrbitAnimator) State() State {
	switch {
	case a.timeline == nil:
		return StateInactive
	case a.timeline.Paused():
		return StatePaused
	default:
		return StateAnimating
	}
}

// Multiplier reads the live multiplier for this animator's kind
func (a *OrbitAnimator) Multiplier() float64 {
	if a.kind == KindOrbit {
		return a.settings.OrbitSpeedMultiplier()
	}
	return a.settings.RotationSpeedMultiplier()
}

// LoopDuration returns seconds per revolution at multiplier m; m must be > 0
func (a *OrbitAnimator) LoopDuration(m float64) float64 {
	return 360 / (a.degreesPerSecond * m)
}

// Keyframes returns the closed loop of tilted orientations
func (a *OrbitAnimator) Keyframes() []mgl64.Quat {
	keys := make([]mgl64.Quat, keyframeCount)
	for i := range keys {
		angle := float64(i) * 360 / float64(keyframeCount-1)
		if a.clockwise {
			angle = 360 - angle
		}
		keys[i] = vmath.TiltedTurn(a.tiltDeg, angle)
	}
	return keys
}

// Activate starts a fresh loop at phase 0 and applies the initial pose
func (a *OrbitAnimator) Activate(n *scene.Node) {
	if a.timeline != nil {
		return
	}
	now := nowSeconds(n)

	a.timeline = NewLoop(a.Keyframes())
	m := a.Multiplier()
	if m == 0 {
		a.timeline.StartPaused(now)
	} else {
		a.timeline.Start(now, a.LoopDuration(m))
	}
	a.lastMultiplier = m
	n.SetLocalRotation(a.timeline.Sample(now))

	if a.recorder != nil {
		a.recorder.AnimatorStarted(a.kind.String())
	}
}

// Deactivate cancels and drops the loop
func (a *OrbitAnimator) Deactivate(n *scene.Node) {
	if a.timeline == nil {
		return
	}
	a.timeline.Cancel()
	a.timeline = nil

	if a.recorder != nil {
		a.recorder.AnimatorStopped(a.kind.String())
	}
}

// Update follows multiplier changes then poses the node
func (a *OrbitAnimator) Update(n *scene.Node, ft scene.FrameTime) {
	if a.timeline == nil {
		return
	}
	now := ft.Seconds()

	if m := a.Multiplier(); m != a.lastMultiplier {
		switch {
		case m == 0:
			a.timeline.Pause(now)
		case a.timeline.Paused():
			a.timeline.Resume(now, a.LoopDuration(m))
		default:
			a.timeline.Retime(now, a.LoopDuration(m))
		}
		a.lastMultiplier = m

		if a.recorder != nil {
			a.recorder.AnimatorRetimed(a.kind.String())
		}
	}

	n.SetLocalRotation(a.timeline.Sample(now))
}

func nowSeconds(n *scene.Node) float64 {
	if sc := n.Scene(); sc != nil {
		return sc.NowSeconds()
	}
	return 0
}
