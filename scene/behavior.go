package scene

import "time"

// FrameTime describes one frame of scene time
type FrameTime struct {
	Elapsed time.Duration // scene time of this frame, since the scene started
	Delta   time.Duration // time since the previous frame
}

// Seconds returns Elapsed in seconds
func (ft FrameTime) Seconds() float64 {
	return ft.Elapsed.Seconds()
}

// DeltaSeconds returns Delta in seconds
func (ft FrameTime) DeltaSeconds() float64 {
	return ft.Delta.Seconds()
}

// TapEvent is a tap delivered to a node, in screen coordinates
type TapEvent struct {
	X, Y int
	Hit  *Node // node originally hit, before bubbling
}

// Behavior is the per-node capability table invoked by the scene
type Behavior interface {
	// Activate runs when the node becomes active; the node is already marked active
	Activate(n *Node)
	// Deactivate runs when the node stops being active
	Deactivate(n *Node)
	// Update runs once per frame while the node is active
	Update(n *Node, ft FrameTime)
	// Tap handles a tap on the node or a descendant; true consumes it
	Tap(n *Node, ev TapEvent) bool
}

// BaseBehavior implements Behavior with no-ops
// Embed in behaviors that only need some of the callbacks
type BaseBehavior struct{}

func (BaseBehavior) Activate(*Node)           {}
func (BaseBehavior) Deactivate(*Node)         {}
func (BaseBehavior) Update(*Node, FrameTime)  {}
func (BaseBehavior) Tap(*Node, TapEvent) bool { return false }

// TapListener consumes taps on a node without a dedicated Behavior
type TapListener func(n *Node, ev TapEvent)
