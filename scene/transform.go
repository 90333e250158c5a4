package scene

import "github.com/go-gl/mathgl/mgl64"

func (n *Node) LocalPosition() mgl64.Vec3 { return n.position }
func (n *Node) LocalRotation() mgl64.Quat { return n.rotation }
func (n *Node) LocalScale() mgl64.Vec3    { return n.scale }

func (n *Node) SetLocalPosition(p mgl64.Vec3) { n.position = p }

func (n *Node) SetLocalRotation(q mgl64.Quat) { n.rotation = q.Normalize() }

func (n *Node) SetLocalScale(s mgl64.Vec3) { n.scale = s }

// SetUniformScale sets the same scale on all three axes
func (n *Node) SetUniformScale(s float64) { n.scale = mgl64.Vec3{s, s, s} }

// LocalTransform returns T·R·S for the node's local properties
func (n *Node) LocalTransform() mgl64.Mat4 {
	t := mgl64.Translate3D(n.position.X(), n.position.Y(), n.position.Z())
	s := mgl64.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z())
	return t.Mul4(n.rotation.Mat4()).Mul4(s)
}

// WorldTransform composes local transforms from the root down
func (n *Node) WorldTransform() mgl64.Mat4 {
	if n.parent == nil {
		return n.LocalTransform()
	}
	return n.parent.WorldTransform().Mul4(n.LocalTransform())
}

// WorldPosition returns the node origin in world space
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldTransform().Col(3).Vec3()
}

// SetWorldPosition moves the node so its origin lands on p
func (n *Node) SetWorldPosition(p mgl64.Vec3) {
	if n.parent == nil {
		n.position = p
		return
	}
	inv := n.parent.WorldTransform().Inv()
	n.position = inv.Mul4x1(p.Vec4(1)).Vec3()
}

// WorldRotation composes local rotations from the root down
func (n *Node) WorldRotation() mgl64.Quat {
	if n.parent == nil {
		return n.rotation
	}
	return n.parent.WorldRotation().Mul(n.rotation).Normalize()
}

// SetWorldRotation sets the local rotation so the world rotation becomes q
func (n *Node) SetWorldRotation(q mgl64.Quat) {
	if n.parent == nil {
		n.SetLocalRotation(q)
		return
	}
	n.SetLocalRotation(n.parent.WorldRotation().Inverse().Mul(q))
}
