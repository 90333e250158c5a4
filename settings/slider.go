package settings

import "math"

// DefaultSliderMax is the seek range of the control panel sliders
const DefaultSliderMax = 100

// Slider maps an integer seek position onto one multiplier
type Slider struct {
	Label    string
	Max      int
	progress int
	apply    func(float64)
}

// NewSlider creates a slider positioned at value
// apply receives the new multiplier on every position change
func NewSlider(label string, maxProgress int, value float64, apply func(float64)) *Slider {
	if maxProgress <= 0 {
		maxProgress = DefaultSliderMax
	}
	sl := &Slider{Label: label, Max: maxProgress, apply: apply}
	sl.progress = sl.clampProgress(int(math.Round(value / MaxMultiplier * float64(maxProgress))))
	return sl
}

// OrbitSlider binds a slider to the orbit multiplier
func OrbitSlider(s *SpeedSettings) *Slider {
	return NewSlider("Orbit", DefaultSliderMax, s.OrbitSpeedMultiplier(), s.SetOrbitSpeedMultiplier)
}

// RotationSlider binds a slider to the spin multiplier
func RotationSlider(s *SpeedSettings) *Slider {
	return NewSlider("Rotation", DefaultSliderMax, s.RotationSpeedMultiplier(), s.SetRotationSpeedMultiplier)
}

// Progress returns the seek position in [0, Max]
func (sl *Slider) Progress() int {
	return sl.progress
}

// Multiplier converts the seek position to a multiplier in [0, MaxMultiplier]
func (sl *Slider) Multiplier() float64 {
	return float64(sl.progress) / float64(sl.Max) * MaxMultiplier
}

// SetProgress moves the slider and applies the resulting multiplier
func (sl *Slider) SetProgress(p int) {
	sl.progress = sl.clampProgress(p)
	if sl.apply != nil {
		sl.apply(sl.Multiplier())
	}
}

// Step moves the slider by delta positions
func (sl *Slider) Step(delta int) {
	sl.SetProgress(sl.progress + delta)
}

func (sl *Slider) clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > sl.Max {
		return sl.Max
	}
	return p
}
