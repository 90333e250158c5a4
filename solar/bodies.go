package solar

// AUToMeters is the default scene distance of one astronomical unit
const AUToMeters = 0.5

// BodySpec holds the fixed display parameters of one orbiting body
type BodySpec struct {
	Name                  string
	Parent                string
	DistanceAU            float64
	OrbitDegreesPerSecond float64
	Scale                 float64
	AxisTilt              float64
}

// SunName is the orbital center of the planets
const SunName = "Sun"

// DefaultBodies lists planets before the moons that orbit them
var DefaultBodies = []BodySpec{
	{Name: "Mercury", Parent: SunName, DistanceAU: 0.4, OrbitDegreesPerSecond: 47, Scale: 0.019, AxisTilt: 0.03},
	{Name: "Venus", Parent: SunName, DistanceAU: 0.7, OrbitDegreesPerSecond: 35, Scale: 0.0475, AxisTilt: 2.64},
	{Name: "Earth", Parent: SunName, DistanceAU: 1.0, OrbitDegreesPerSecond: 29, Scale: 0.05, AxisTilt: 23.4},
	{Name: "Moon", Parent: "Earth", DistanceAU: 1.15, OrbitDegreesPerSecond: 100, Scale: 0.018, AxisTilt: 6.68},
	{Name: "Mars", Parent: SunName, DistanceAU: 1.5, OrbitDegreesPerSecond: 24, Scale: 0.0265, AxisTilt: 25.19},
	{Name: "Jupiter", Parent: SunName, DistanceAU: 2.2, OrbitDegreesPerSecond: 13, Scale: 0.16, AxisTilt: 3.13},
	{Name: "Saturn", Parent: SunName, DistanceAU: 3.5, OrbitDegreesPerSecond: 9, Scale: 0.1325, AxisTilt: 26.73},
	{Name: "Uranus", Parent: SunName, DistanceAU: 5.2, OrbitDegreesPerSecond: 7, Scale: 0.1, AxisTilt: 82.23},
	{Name: "Neptune", Parent: SunName, DistanceAU: 6.1, OrbitDegreesPerSecond: 5, Scale: 0.074, AxisTilt: 28.32},
}
