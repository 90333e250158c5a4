// Package vmath holds rotation and angle helpers for the scene graph
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Principal axes in the scene's right-handed, Y-up frame
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// AxisAngle returns a rotation of degrees around axis
// Axis need not be normalized; a zero axis yields identity
func AxisAngle(axis mgl64.Vec3, degrees float64) mgl64.Quat {
	if axis.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), axis.Normalize())
}

// TiltedTurn returns a turn around Y pre-multiplied by a tilt around X
// The result spins a node around an axis leaning tiltDeg away from Y
func TiltedTurn(tiltDeg, turnDeg float64) mgl64.Quat {
	return AxisAngle(AxisX, tiltDeg).Mul(AxisAngle(AxisY, turnDeg))
}

// SameRotation reports whether a and b describe the same orientation
// q and -q are the same rotation, so the comparison uses |a·b|
func SameRotation(a, b mgl64.Quat, eps float64) bool {
	a, b = a.Normalize(), b.Normalize()
	return 1-math.Abs(a.Dot(b)) <= eps
}

// NearVec reports whether a and b lie within eps of each other
// The distance is absolute, so components near zero compare by the same bound
func NearVec(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

// TwistDegrees returns the angle of q's twist around axis in [0, 360)
// Swing-twist decomposition: only the component of q.V along axis counts
func TwistDegrees(q mgl64.Quat, axis mgl64.Vec3) float64 {
	axis = axis.Normalize()
	proj := q.V.Dot(axis)
	if proj == 0 && q.W == 0 {
		return 0
	}
	return WrapDegrees(mgl64.RadToDeg(2 * math.Atan2(proj, q.W)))
}
