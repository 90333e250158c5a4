package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// TestAxisAngleRotatesVector checks the handedness of AxisAngle
func TestAxisAngleRotatesVector(t *testing.T) {
	q := AxisAngle(AxisY, 90)
	got := q.Rotate(AxisX)
	want := mgl64.Vec3{0, 0, -1}
	if !NearVec(got, want, eps) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestNearVecAbsolute checks rounding noise on a zero component stays within eps
func TestNearVecAbsolute(t *testing.T) {
	noisy := mgl64.Vec3{2.220446049250313e-16, 0, -1}
	if !NearVec(noisy, mgl64.Vec3{0, 0, -1}, eps) {
		t.Errorf("Expected %v near [0 0 -1]", noisy)
	}
	if NearVec(mgl64.Vec3{1e-6, 0, 0}, mgl64.Vec3{}, eps) {
		t.Error("Expected a 1e-6 offset to exceed eps")
	}
}

// TestAxisAngleZeroAxis verifies a zero axis degrades to identity
func TestAxisAngleZeroAxis(t *testing.T) {
	q := AxisAngle(mgl64.Vec3{}, 45)
	if !SameRotation(q, mgl64.QuatIdent(), eps) {
		t.Errorf("Expected identity, got %v", q)
	}
}

// TestTiltedTurnKeepsTiltedAxisFixed verifies the spin axis leans by the tilt
func TestTiltedTurnKeepsTiltedAxisFixed(t *testing.T) {
	tilt := 23.4
	axis := AxisAngle(AxisX, tilt).Rotate(AxisY)
	for _, turn := range []float64{0, 37, 120, 301} {
		got := TiltedTurn(tilt, turn).Rotate(AxisY)
		if !NearVec(got, axis, 1e-9) {
			t.Errorf("turn %v: expected tilted axis %v, got %v", turn, axis, got)
		}
	}
}

// TestSameRotationAntipodal treats q and -q as equal
func TestSameRotationAntipodal(t *testing.T) {
	q := AxisAngle(AxisY, 360)
	if !SameRotation(q, mgl64.QuatIdent(), eps) {
		t.Errorf("Expected 360 degree turn to equal identity, got %v", q)
	}
	if SameRotation(AxisAngle(AxisY, 10), mgl64.QuatIdent(), eps) {
		t.Error("Expected 10 degree turn to differ from identity")
	}
}

// TestTwistDegrees recovers turn angles around Y, including under tilt
func TestTwistDegrees(t *testing.T) {
	cases := []float64{0, 15, 90, 179, 181, 270, 359}
	for _, deg := range cases {
		got := TwistDegrees(AxisAngle(AxisY, deg), AxisY)
		if math.Abs(AngleDelta(deg, got)) > 1e-7 {
			t.Errorf("Expected %v, got %v", deg, got)
		}
	}
}

// TestWrapUnit folds values into [0, 1)
func TestWrapUnit(t *testing.T) {
	cases := map[float64]float64{
		0:      0,
		0.25:   0.25,
		1:      0,
		1.75:   0.75,
		-0.25:  0.75,
		-1e-18: 0,
	}
	for in, want := range cases {
		got := WrapUnit(in)
		if math.Abs(got-want) > eps {
			t.Errorf("WrapUnit(%v): expected %v, got %v", in, want, got)
		}
		if got < 0 || got >= 1 {
			t.Errorf("WrapUnit(%v) out of range: %v", in, got)
		}
	}
}

// TestAngleDelta returns the short way around
func TestAngleDelta(t *testing.T) {
	if d := AngleDelta(350, 10); math.Abs(d-20) > eps {
		t.Errorf("Expected 20, got %v", d)
	}
	if d := AngleDelta(10, 350); math.Abs(d+20) > eps {
		t.Errorf("Expected -20, got %v", d)
	}
}

// TestLookRotationFacesTarget checks +Z maps onto the requested direction
func TestLookRotationFacesTarget(t *testing.T) {
	dirs := []mgl64.Vec3{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{1, 2, 3},
		{-4, 0.5, -2},
	}
	for _, d := range dirs {
		q, ok := LookRotation(d, AxisY)
		if !ok {
			t.Fatalf("Expected ok for %v", d)
		}
		got := q.Rotate(AxisZ)
		if !NearVec(got, d.Normalize(), 1e-9) {
			t.Errorf("dir %v: expected facing %v, got %v", d, d.Normalize(), got)
		}
		// Local right stays horizontal for a Y-up look
		if r := q.Rotate(AxisX); math.Abs(r.Y()) > 1e-9 {
			t.Errorf("dir %v: expected level right vector, got %v", d, r)
		}
	}
}

// TestLookRotationDegenerate covers zero and vertical directions
func TestLookRotationDegenerate(t *testing.T) {
	if _, ok := LookRotation(mgl64.Vec3{}, AxisY); ok {
		t.Error("Expected ok=false for zero forward")
	}

	for _, d := range []mgl64.Vec3{{0, 1, 0}, {0, -3, 0}} {
		q, ok := LookRotation(d, AxisY)
		if !ok {
			t.Fatalf("Expected ok for vertical %v", d)
		}
		got := q.Rotate(AxisZ)
		if !NearVec(got, d.Normalize(), 1e-9) {
			t.Errorf("vertical %v: expected facing %v, got %v", d, d.Normalize(), got)
		}
		if math.IsNaN(q.W) {
			t.Errorf("vertical %v: NaN rotation", d)
		}
	}
}
