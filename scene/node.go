package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is one element of the scene tree
type Node struct {
	name     string
	parent   *Node
	children []*Node
	scene    *Scene

	enabled bool
	active  bool

	position mgl64.Vec3
	rotation mgl64.Quat
	scale    mgl64.Vec3

	behavior   Behavior
	onTap      TapListener
	renderable any
}

// NewNode creates a detached, enabled node with identity transform
func NewNode(name string) *Node {
	return &Node{
		name:     name,
		enabled:  true,
		rotation: mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewBehaviorNode creates a node driven by b
func NewBehaviorNode(name string, b Behavior) *Node {
	n := NewNode(name)
	n.behavior = b
	return n
}

func (n *Node) Name() string        { return n.name }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) Scene() *Scene       { return n.scene }
func (n *Node) Enabled() bool       { return n.enabled }
func (n *Node) Active() bool        { return n.active }
func (n *Node) Behavior() Behavior  { return n.behavior }
func (n *Node) Renderable() any     { return n.renderable }
func (n *Node) SetRenderable(r any) { n.renderable = r }

// SetTapListener installs fn as the node's tap consumer, nil removes it
func (n *Node) SetTapListener(fn TapListener) {
	n.onTap = fn
}

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// SetBehavior replaces the node's behavior
// Must be called while the node is inactive
func (n *Node) SetBehavior(b Behavior) {
	if n.active {
		panic(fmt.Sprintf("scene: SetBehavior on active node %q", n.name))
	}
	n.behavior = b
}

// SetParent attaches n under p, or detaches it when p is nil
// Activation state of the subtree is updated synchronously
func (n *Node) SetParent(p *Node) {
	if p == n.parent {
		return
	}
	if p != nil && p.isWithin(n) {
		panic(fmt.Sprintf("scene: cannot parent %q under its own descendant %q", n.name, p.name))
	}

	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = p

	var sc *Scene
	if p != nil {
		p.children = append(p.children, n)
		sc = p.scene
	}
	n.setScene(sc)
	n.updateActive()
}

// AddChild attaches c under n
func (n *Node) AddChild(c *Node) {
	c.SetParent(n)
}

// SetEnabled toggles the node; disabling deactivates the subtree
func (n *Node) SetEnabled(enabled bool) {
	if n.enabled == enabled {
		return
	}
	n.enabled = enabled
	n.updateActive()
}

// Walk visits n and its descendants depth-first, parent before children
// Returning false from fn skips the node's children
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the first descendant (or n itself) with the given name
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

func (n *Node) isWithin(ancestor *Node) bool {
	for c := n; c != nil; c = c.parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

func (n *Node) removeChild(c *Node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) setScene(sc *Scene) {
	n.scene = sc
	for _, c := range n.children {
		c.setScene(sc)
	}
}

func (n *Node) shouldBeActive() bool {
	if n.scene == nil || !n.enabled {
		return false
	}
	if n.parent == nil {
		return n == n.scene.root
	}
	return n.parent.active
}

// updateActive reconciles activation for n then its children
// Behaviors may attach children while activating; the snapshot below
// revisits them harmlessly since they activated on attach
func (n *Node) updateActive() {
	should := n.shouldBeActive()
	if should != n.active {
		n.active = should
		if n.behavior != nil {
			if should {
				n.behavior.Activate(n)
			} else {
				n.behavior.Deactivate(n)
			}
		}
	}
	for _, c := range n.Children() {
		c.updateActive()
	}
}
