package crane

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// CrateSpec places a crate on the ground.
type CrateSpec struct {
	// Position is the ground point under the crate center.
	Position vec.Vec2
	Size     mgl64.Vec3
	// Yaw turns the crate about the vertical axis, in radians.
	Yaw      float64
	Material Material
}

// ContainerSpec describes the open-top drop container.
type ContainerSpec struct {
	Position  vec.Vec2
	Length    float64 // along X
	Width     float64 // along Z
	Height    float64
	Thickness float64
}

// DefaultCrates returns the two stock crates.
func DefaultCrates() []CrateSpec {
	return []CrateSpec{
		{Position: vec.Vec2{X: 20, Y: -10}, Size: mgl64.Vec3{5, 5, 5}, Yaw: 1, Material: CoffeeBrown},
		{Position: vec.Vec2{X: 10, Y: -20}, Size: mgl64.Vec3{5, 5, 5}, Yaw: 0, Material: Red},
	}
}

// DefaultContainer returns the stock container.
func DefaultContainer() ContainerSpec {
	return ContainerSpec{
		Position:  vec.Vec2{X: -18, Y: 0},
		Length:    15,
		Width:     20,
		Height:    5,
		Thickness: 1,
	}
}

// Crate is a pickable box.
type Crate struct {
	ID       int
	Node     *Node
	Size     mgl64.Vec3
	Material Material

	// Height is the vertical extent of the crate, fixed at creation.
	Height float64

	// Bounds are the world bounding volumes. They are computed when the
	// crate is placed and do not follow a carried crate.
	Bounds Bounds

	Grabbed     bool
	Deposited   bool
	InContainer bool
}

func (c *Crate) String() string {
	return fmt.Sprintf("crate %d (%v)", c.ID, c.Material)
}

// Footprint returns the ground-plane box of the crate.
func (c *Crate) Footprint() BB {
	return Footprint(c.Bounds.Box)
}

// Container is the drop zone crates are carried to.
type Container struct {
	Node *Node
	// Footprint is the outer ground-plane box of the walls.
	Footprint BB
	// Floor is the height of the inner floor surface.
	Floor float64
}

// Holds reports whether a ground point lies over the container.
func (c *Container) Holds(p vec.Vec2) bool {
	return c.Footprint.ContainsVect(p)
}

// Yard holds the crates waiting to be picked, the deposited ones and the
// container.
type Yard struct {
	Root *Node

	// Crates are the crates still available for pickup.
	Crates []*Crate

	// Deposited are the crates already carried and set down, in order.
	Deposited []*Crate

	Container *Container

	nextID int
}

// NewYard places the crates and the container.
func NewYard(crates []CrateSpec, container ContainerSpec) *Yard {
	y := &Yard{Root: NewNode("yard")}
	for _, spec := range crates {
		y.Add(spec)
	}
	y.Container = y.addContainer(container)
	return y
}

// Add places a new pickable crate and returns it.
func (y *Yard) Add(spec CrateSpec) *Crate {
	id := y.nextID
	y.nextID++
	n := y.Root.Add(NewMesh(fmt.Sprintf("crate%d", id), Box{Size: spec.Size}, spec.Material))
	n.SetPosition(spec.Position.X, spec.Size[1]/2, spec.Position.Y)
	n.Rotation = mgl64.QuatRotate(spec.Yaw, YAxis)
	c := &Crate{
		ID:       id,
		Node:     n,
		Size:     spec.Size,
		Material: spec.Material,
		Bounds:   NewBounds(n.WorldBounds()),
	}
	c.Height = c.Bounds.Height()
	n.UserData = c
	y.Crates = append(y.Crates, c)
	return c
}

func (y *Yard) addContainer(spec ContainerSpec) *Container {
	root := y.Root.Add(NewNode("container"))
	root.SetPosition(spec.Position.X, 0, spec.Position.Y)

	wall := func(name string, x, z, length, height, depth, yaw float64, m Material) {
		n := root.Add(NewMesh(name, NewBox(length, height, depth), m))
		n.SetPosition(x, height/2, z)
		n.Rotation = mgl64.QuatRotate(yaw, YAxis)
	}
	l, w, h, t := spec.Length, spec.Width, spec.Height, spec.Thickness
	wall("wallBack", 0, -w/2, l, h, t, 0, CoffeeBrown)
	wall("wallFront", 0, w/2, l, h, t, 0, CoffeeBrown)
	wall("wallRight", (l-t)/2, 0, w, h, t, mgl64.DegToRad(90), CoffeeBrown)
	wall("wallLeft", -(l-t)/2, 0, w, h, t, mgl64.DegToRad(90), CoffeeBrown)
	wall("floor", 0, 0, l-t, t, w, 0, Grey)

	return &Container{
		Node:      root,
		Footprint: Footprint(root.WorldBounds()),
		Floor:     t,
	}
}

// Index returns the position of c among the pickable crates, or -1.
func (y *Yard) Index(c *Crate) int {
	return slices.Index(y.Crates, c)
}

// Take removes c from the pickable crates and detaches its node from the
// yard. It reports whether c was available.
func (y *Yard) Take(c *Crate) bool {
	i := y.Index(c)
	if i < 0 {
		return false
	}
	y.Crates = slices.Delete(y.Crates, i, i+1)
	y.Root.Remove(c.Node)
	c.Grabbed = true
	return true
}

// Deposit sets c down below its current world position, on the container
// floor when it is over the container and on the ground otherwise.
func (y *Yard) Deposit(c *Crate) {
	y.Root.Attach(c.Node)
	ground := Ground(c.Node.WorldPosition())
	c.InContainer = y.Container != nil && y.Container.Holds(ground)
	floor := 0.0
	if c.InContainer {
		floor = y.Container.Floor
	}
	c.Node.Position[1] = floor + c.Height/2
	c.Bounds = NewBounds(c.Node.WorldBounds())
	c.Grabbed = false
	c.Deposited = true
	y.Deposited = append(y.Deposited, c)
}
