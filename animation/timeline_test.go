package animation

import (
	"math"
	"testing"

	"github.com/lixenwraith/orrery/vmath"
)

const tol = 1e-9

func testKeyframes(tilt float64, clockwise bool) *OrbitAnimator {
	a := &OrbitAnimator{tiltDeg: tilt, clockwise: clockwise}
	return a
}

// TestSampleLoopMatchesDirectTurn checks keyframe slerp equals tilt·Ry(360·phase)
func TestSampleLoopMatchesDirectTurn(t *testing.T) {
	for _, tilt := range []float64{0, 23.4, 82.23} {
		for _, cw := range []bool{false, true} {
			keys := testKeyframes(tilt, cw).Keyframes()
			for _, phase := range []float64{0, 0.1, 0.3333, 0.5, 0.7, 0.999} {
				turn := 360 * phase
				if cw {
					turn = 360 - turn
				}
				want := vmath.TiltedTurn(tilt, turn)
				got := SampleLoop(keys, phase)
				if !vmath.SameRotation(got, want, 1e-9) {
					t.Errorf("tilt=%v cw=%v phase=%v: expected %v, got %v", tilt, cw, phase, want, got)
				}
			}
		}
	}
}

// TestKeyframesClosedLoop verifies first and last keyframes coincide
func TestKeyframesClosedLoop(t *testing.T) {
	keys := testKeyframes(26.73, false).Keyframes()
	if len(keys) != 4 {
		t.Fatalf("Expected 4 keyframes, got %d", len(keys))
	}
	if !vmath.SameRotation(keys[0], keys[3], tol) {
		t.Errorf("Expected closed loop, got %v and %v", keys[0], keys[3])
	}
}

// TestTimelinePhaseAdvancesAndWraps follows the phase clock over two loops
func TestTimelinePhaseAdvancesAndWraps(t *testing.T) {
	tl := NewLoop(testKeyframes(0, false).Keyframes())
	tl.Start(10, 4)

	cases := map[float64]float64{
		10: 0,
		11: 0.25,
		13: 0.75,
		14: 0,
		15: 0.25,
	}
	for now, want := range cases {
		if got := tl.Phase(now); math.Abs(got-want) > tol {
			t.Errorf("Phase(%v): expected %v, got %v", now, want, got)
		}
	}
}

// TestTimelineRetimeKeepsPhase checks rate changes are continuous
func TestTimelineRetimeKeepsPhase(t *testing.T) {
	tl := NewLoop(testKeyframes(0, false).Keyframes())
	tl.Start(0, 4)

	before := tl.Phase(1)
	tl.Retime(1, 2)
	if got := tl.Phase(1); math.Abs(got-before) > tol {
		t.Errorf("Expected phase %v at retime, got %v", before, got)
	}
	// Twice the rate from here on
	if got := tl.Phase(1.5); math.Abs(got-0.5) > tol {
		t.Errorf("Expected 0.5, got %v", got)
	}
}

// TestTimelinePauseResume freezes and resumes at the same phase
func TestTimelinePauseResume(t *testing.T) {
	tl := NewLoop(testKeyframes(0, false).Keyframes())
	tl.Start(0, 8)

	tl.Pause(2)
	frozen := tl.Phase(2)
	for _, now := range []float64{2, 3, 100} {
		if got := tl.Phase(now); got != frozen {
			t.Errorf("Expected frozen phase %v at %v, got %v", frozen, now, got)
		}
	}
	if !tl.Paused() {
		t.Error("Expected paused")
	}

	tl.Resume(50, 4)
	if got := tl.Phase(50); got != frozen {
		t.Errorf("Expected resume at %v, got %v", frozen, got)
	}
	if got := tl.Phase(51); math.Abs(got-(frozen+0.25)) > tol {
		t.Errorf("Expected %v, got %v", frozen+0.25, got)
	}
}

// TestTimelineStartPaused holds phase 0 until resumed
func TestTimelineStartPaused(t *testing.T) {
	tl := NewLoop(testKeyframes(0, false).Keyframes())
	tl.StartPaused(3)
	if tl.Phase(99) != 0 {
		t.Errorf("Expected phase 0, got %v", tl.Phase(99))
	}
	tl.Resume(5, 10)
	if got := tl.Phase(6); math.Abs(got-0.1) > tol {
		t.Errorf("Expected 0.1, got %v", got)
	}
}

// TestTimelineRejectsBadDuration fails fast on zero duration
func TestTimelineRejectsBadDuration(t *testing.T) {
	tl := NewLoop(testKeyframes(0, false).Keyframes())
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero duration")
		}
	}()
	tl.Start(0, 0)
}
