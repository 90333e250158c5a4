// Package settings holds the live speed multipliers shared by one solar system
package settings

import (
	"math"
	"sync/atomic"
)

const (
	// DefaultMultiplier is the speed of the model as authored
	DefaultMultiplier = 1.0
	// MaxMultiplier is the top of the slider range
	MaxMultiplier = 10.0
)

// SpeedSettings holds the orbit and spin multipliers read by animators every frame
// Values are float64 bit patterns in atomics so a UI goroutine may write while
// the frame goroutine reads; last write wins
type SpeedSettings struct {
	orbit    atomic.Uint64
	rotation atomic.Uint64
}

// NewSpeedSettings returns settings at the default multiplier
func NewSpeedSettings() *SpeedSettings {
	s := &SpeedSettings{}
	s.SetOrbitSpeedMultiplier(DefaultMultiplier)
	s.SetRotationSpeedMultiplier(DefaultMultiplier)
	return s
}

// OrbitSpeedMultiplier scales every orbit animator
func (s *SpeedSettings) OrbitSpeedMultiplier() float64 {
	return math.Float64frombits(s.orbit.Load())
}

// RotationSpeedMultiplier scales every self-spin animator
func (s *SpeedSettings) RotationSpeedMultiplier() float64 {
	return math.Float64frombits(s.rotation.Load())
}

// SetOrbitSpeedMultiplier stores v clamped to [0, MaxMultiplier]
func (s *SpeedSettings) SetOrbitSpeedMultiplier(v float64) {
	s.orbit.Store(math.Float64bits(Clamp(v)))
}

// SetRotationSpeedMultiplier stores v clamped to [0, MaxMultiplier]
func (s *SpeedSettings) SetRotationSpeedMultiplier(v float64) {
	s.rotation.Store(math.Float64bits(Clamp(v)))
}

// Clamp bounds a multiplier to [0, MaxMultiplier], NaN becomes 0
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > MaxMultiplier:
		return MaxMultiplier
	}
	return v
}
