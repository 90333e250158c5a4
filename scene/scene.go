package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Observer receives frame and tap activity, e.g. for metrics
type Observer interface {
	ObserveFrame(took time.Duration)
	ObserveTap(target string, consumed bool)
}

// Scene owns the root of a node tree, a camera and the scene clock
type Scene struct {
	root   *Node
	camera *Node

	elapsed time.Duration
	frames  uint64

	observer Observer
}

// New creates an empty scene with the camera at the origin
func New() *Scene {
	s := &Scene{}
	s.root = NewNode("root")
	s.root.scene = s
	s.root.active = true

	s.camera = NewNode("camera")
	s.camera.SetParent(s.root)
	return s
}

func (s *Scene) Root() *Node   { return s.root }
func (s *Scene) Camera() *Node { return s.camera }

// SetObserver installs o; nil disables observation
func (s *Scene) SetObserver(o Observer) {
	s.observer = o
}

// AddChild attaches n directly under the scene root
func (s *Scene) AddChild(n *Node) {
	n.SetParent(s.root)
}

// Now returns the current scene time
func (s *Scene) Now() time.Duration {
	return s.elapsed
}

// NowSeconds returns the current scene time in seconds
func (s *Scene) NowSeconds() float64 {
	return s.elapsed.Seconds()
}

// Frames returns the number of completed Update calls
func (s *Scene) Frames() uint64 {
	return s.frames
}

// Update advances the clock by delta and runs one frame
func (s *Scene) Update(delta time.Duration) FrameTime {
	if delta < 0 {
		delta = 0
	}
	start := time.Now()

	s.elapsed += delta
	ft := FrameTime{Elapsed: s.elapsed, Delta: delta}
	s.updateNode(s.root, ft)
	s.frames++

	if s.observer != nil {
		s.observer.ObserveFrame(time.Since(start))
	}
	return ft
}

func (s *Scene) updateNode(n *Node, ft FrameTime) {
	// A behavior earlier in the frame may have detached or disabled n
	if !n.active {
		return
	}
	if n.behavior != nil {
		n.behavior.Update(n, ft)
	}
	for _, c := range n.Children() {
		s.updateNode(c, ft)
	}
}

// DispatchTap delivers ev to hit and bubbles it up the ancestors
// A tap listener always consumes; a behavior consumes when Tap returns true
// Returns whether any node consumed the tap
func (s *Scene) DispatchTap(hit *Node, ev TapEvent) bool {
	if hit == nil || hit.scene != s {
		return false
	}
	ev.Hit = hit

	for n := hit; n != nil; n = n.parent {
		if !n.active {
			continue
		}
		if n.onTap != nil {
			n.onTap(n, ev)
			s.observeTap(n.name, true)
			return true
		}
		if n.behavior != nil && n.behavior.Tap(n, ev) {
			s.observeTap(n.name, true)
			return true
		}
	}
	s.observeTap(hit.name, false)
	return false
}

func (s *Scene) observeTap(target string, consumed bool) {
	if s.observer != nil {
		s.observer.ObserveTap(target, consumed)
	}
}

// PlaceCamera moves the camera to eye in world space
func (s *Scene) PlaceCamera(eye mgl64.Vec3) {
	s.camera.SetWorldPosition(eye)
}
