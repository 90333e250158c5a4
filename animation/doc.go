// Package animation drives looping node rotations for orbits and spins.
//
// An OrbitAnimator is a scene.Behavior. While its node is active it owns a
// Timeline that sweeps the node's local rotation through a full turn around a
// tilted Y axis. The loop speed is a base angular rate scaled by one of the
// live multipliers in settings.SpeedSettings, re-read every frame. A change of
// multiplier re-times the loop at the current phase, a zero multiplier pauses
// it, and deactivation cancels it.
package animation
