package vmath

import "math"

// WrapUnit folds x into [0, 1)
func WrapUnit(x float64) float64 {
	w := x - math.Floor(x)
	// Floor of values like -1e-18 leaves exactly 1.0
	if w >= 1 {
		return 0
	}
	return w
}

// WrapDegrees folds an angle into [0, 360)
func WrapDegrees(deg float64) float64 {
	return WrapUnit(deg/360) * 360
}

// AngleDelta returns the signed shortest difference b-a in degrees, in (-180, 180]
func AngleDelta(a, b float64) float64 {
	d := WrapDegrees(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}
