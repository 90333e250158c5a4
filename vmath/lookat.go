package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateEps bounds squared lengths treated as zero by LookRotation
const degenerateEps = 1e-12

// LookRotation returns the rotation mapping local +Z onto forward with local +Y
// as close to up as possible
// ok is false when forward has no direction; the caller keeps its previous pose
// When forward is parallel to up, AxisZ (or AxisX) stands in as the up vector
func LookRotation(forward, up mgl64.Vec3) (q mgl64.Quat, ok bool) {
	if forward.Dot(forward) < degenerateEps {
		return mgl64.QuatIdent(), false
	}
	f := forward.Normalize()

	right := up.Cross(f)
	if right.Dot(right) < degenerateEps {
		alt := AxisZ
		if math.Abs(f.Dot(alt)) > 0.9 {
			alt = AxisX
		}
		right = alt.Cross(f)
	}
	right = right.Normalize()
	trueUp := f.Cross(right)

	m := mgl64.Mat4FromCols(
		right.Vec4(0),
		trueUp.Vec4(0),
		f.Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return mgl64.Mat4ToQuat(m).Normalize(), true
}
