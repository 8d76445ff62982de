package crane

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is one element of the crane's transform hierarchy.
//
// A node exclusively owns its children: adding a node to a new parent
// removes it from the old one, and dropping a node drops its subtree.
type Node struct {
	// Name is for debugging only; nodes are addressed through typed handles.
	Name string

	// Transform places the node relative to its parent.
	Transform

	// Shape is the optional geometry of the node in its own frame.
	Shape Shape

	Material Material

	// UserData is an object that this node is associated with.
	UserData any

	parent   *Node
	children []*Node
}

// NewNode returns an empty group node at the parent's origin.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: NewTransformIdentity(),
	}
}

// NewMesh returns a node carrying geometry.
func NewMesh(name string, shape Shape, material Material) *Node {
	n := NewNode(name)
	n.Shape = shape
	n.Material = material
	return n
}

func (n *Node) String() string {
	return fmt.Sprint("Node ", n.Name, ", Children ", len(n.children))
}

// SetPosition sets the local translation.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
}

// Parent returns the owning node, nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Add makes child a child of n, removing it from its previous parent.
// It returns child.
func (n *Node) Add(child *Node) *Node {
	if child == n || child.IsAncestorOf(n) {
		panic("Internal Error: adding a node below itself")
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Remove detaches child from n. It reports whether child was a child of n.
func (n *Node) Remove(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// IsAncestorOf reports whether other lies in the subtree below n.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Each calls f for n and every descendant, parents before children.
func (n *Node) Each(f func(*Node)) {
	f(n)
	for _, c := range n.children {
		c.Each(f)
	}
}

// WorldMatrix returns the matrix taking points in n's frame to the world frame.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.Mat4()
	}
	return n.parent.WorldMatrix().Mul4(n.Mat4())
}

// WorldPosition returns the world position of n's origin.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, n.WorldMatrix())
}

// WorldRotation returns the accumulated rotation of n.
func (n *Node) WorldRotation() mgl64.Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q.Normalize()
}

// Attach reparents child under n keeping its world position and
// orientation. Ancestors are assumed to carry unit scale.
func (n *Node) Attach(child *Node) *Node {
	pos := child.WorldPosition()
	rot := child.WorldRotation()
	inv := n.WorldMatrix().Inv()
	child.Position = mgl64.TransformCoordinate(pos, inv)
	child.Rotation = n.WorldRotation().Inverse().Mul(rot).Normalize()
	return n.Add(child)
}

// WorldBounds returns the world box enclosing every vertex of n's subtree.
// The box is empty when the subtree carries no geometry.
func (n *Node) WorldBounds() AABB {
	var parent mgl64.Mat4
	if n.parent == nil {
		parent = mgl64.Ident4()
	} else {
		parent = n.parent.WorldMatrix()
	}
	return n.boundsUnder(parent, EmptyAABB())
}

// LocalBounds returns the box enclosing n's subtree in n's own frame.
func (n *Node) LocalBounds() AABB {
	bb := EmptyAABB()
	bb = n.expandShape(mgl64.Ident4(), bb)
	for _, c := range n.children {
		bb = c.boundsUnder(mgl64.Ident4(), bb)
	}
	return bb
}

func (n *Node) boundsUnder(parent mgl64.Mat4, bb AABB) AABB {
	m := parent.Mul4(n.Mat4())
	bb = n.expandShape(m, bb)
	for _, c := range n.children {
		bb = c.boundsUnder(m, bb)
	}
	return bb
}

func (n *Node) expandShape(m mgl64.Mat4, bb AABB) AABB {
	if n.Shape == nil {
		return bb
	}
	for _, v := range n.Shape.Vertices() {
		bb = bb.Expand(mgl64.TransformCoordinate(v, m))
	}
	return bb
}
