package animation

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/vmath"
)

// Timeline is an endlessly repeating keyframe loop with a local phase clock
//
// Phase advances linearly from phaseAtAnchor starting at anchor, at one loop
// per duration seconds. Retiming re-anchors at the current phase, so a speed
// change alters only the rate, never the pose
type Timeline struct {
	keyframes []mgl64.Quat

	duration      float64 // seconds per loop
	phaseAtAnchor float64 // [0, 1)
	anchor        float64 // scene seconds

	paused    bool
	cancelled bool
}

// NewLoop creates a stopped timeline over keyframes
// The loop is closed: the last keyframe should equal the first
func NewLoop(keyframes []mgl64.Quat) *Timeline {
	if len(keyframes) < 2 {
		panic("animation: a loop needs at least two keyframes")
	}
	k := make([]mgl64.Quat, len(keyframes))
	copy(k, keyframes)
	return &Timeline{keyframes: k}
}

// Start begins the loop at phase 0
func (t *Timeline) Start(now, duration float64) {
	mustPositive(duration)
	t.duration = duration
	t.phaseAtAnchor = 0
	t.anchor = now
	t.paused = false
	t.cancelled = false
}

// StartPaused holds the loop at phase 0 until Resume
func (t *Timeline) StartPaused(now float64) {
	t.phaseAtAnchor = 0
	t.anchor = now
	t.paused = true
	t.cancelled = false
}

// Phase returns the normalized loop position at now, in [0, 1)
func (t *Timeline) Phase(now float64) float64 {
	if t.paused || t.cancelled || t.duration == 0 {
		return t.phaseAtAnchor
	}
	return vmath.WrapUnit(t.phaseAtAnchor + (now-t.anchor)/t.duration)
}

// Retime changes the loop duration, keeping the phase reached at now
func (t *Timeline) Retime(now, duration float64) {
	mustPositive(duration)
	t.phaseAtAnchor = t.Phase(now)
	t.anchor = now
	t.duration = duration
}

// Pause freezes the phase reached at now
func (t *Timeline) Pause(now float64) {
	if t.paused {
		return
	}
	t.phaseAtAnchor = t.Phase(now)
	t.anchor = now
	t.paused = true
}

// Resume continues from the frozen phase at a new duration
func (t *Timeline) Resume(now, duration float64) {
	mustPositive(duration)
	if !t.paused {
		t.Retime(now, duration)
		return
	}
	t.anchor = now
	t.duration = duration
	t.paused = false
}

// Cancel stops the timeline for good; Sample keeps returning the last phase
func (t *Timeline) Cancel() {
	t.cancelled = true
}

func (t *Timeline) Paused() bool            { return t.paused }
func (t *Timeline) Cancelled() bool         { return t.cancelled }
func (t *Timeline) Duration() float64       { return t.duration }
func (t *Timeline) Keyframes() []mgl64.Quat { return t.keyframes }

// Sample returns the interpolated rotation at now
func (t *Timeline) Sample(now float64) mgl64.Quat {
	return SampleLoop(t.keyframes, t.Phase(now))
}

// SampleLoop slerps between evenly spaced keyframes at phase in [0, 1)
func SampleLoop(keyframes []mgl64.Quat, phase float64) mgl64.Quat {
	segments := len(keyframes) - 1
	pos := vmath.WrapUnit(phase) * float64(segments)
	i := int(pos)
	if i >= segments {
		i = segments - 1
	}
	return mgl64.QuatSlerp(keyframes[i], keyframes[i+1], pos-float64(i)).Normalize()
}

func mustPositive(duration float64) {
	if !(duration > 0) {
		panic("animation: loop duration must be positive")
	}
}
