package crane

import (
	"github.com/setanarut/vec"
)

// Draw flags
const (
	DrawCrates    = 1 << 0
	DrawContainer = 1 << 1
	DrawCrane     = 1 << 2
	DrawClawBox   = 1 << 3
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// PlanDrawer draws the ground-plane projection of the scene. Points are in
// ground coordinates (world X, world Z).
type PlanDrawer interface {
	DrawSegment(a, b vec.Vec2, fill FColor, data any)
	DrawPolygon(count int, verts []vec.Vec2, outline, fill FColor, data any)
	DrawDot(size float64, pos vec.Vec2, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	Data() any
}

// DrawFootprint draws a ground-plane box as a polygon.
func DrawFootprint(bb BB, fill FColor, drawer PlanDrawer) {
	verts := bb.Verts()
	drawer.DrawPolygon(len(verts), verts, drawer.OutlineColor(), fill, drawer.Data())
}

// DrawPlan draws the container, the crates, the jib and the claw of sim
// with the drawer implementation.
func DrawPlan(sim *Simulation, drawer PlanDrawer) {
	flags := drawer.Flags()
	data := drawer.Data()

	if flags&DrawContainer != 0 && sim.Yard.Container != nil {
		DrawFootprint(sim.Yard.Container.Footprint, CoffeeBrown.Color(), drawer)
	}

	if flags&DrawCrates != 0 {
		for _, c := range sim.Yard.Crates {
			DrawFootprint(c.Footprint(), c.Material.Color(), drawer)
		}
		for _, c := range sim.Yard.Deposited {
			DrawFootprint(c.Footprint(), c.Material.Color(), drawer)
		}
		if c := sim.Sequencer().Carried(); c != nil {
			DrawFootprint(Footprint(c.Node.WorldBounds()), c.Material.Color(), drawer)
		}
	}

	cr := sim.Crane
	if flags&DrawCrane != 0 {
		tower := Ground(cr.Upper.WorldPosition())
		drawer.DrawSegment(tower, Ground(cr.JibTip()), DarkOrange.Color(), data)
		drawer.DrawDot(4, tower, LightOrange.Color(), data)
		drawer.DrawDot(3, Ground(cr.Trolley.WorldPosition()), Grey.Color(), data)
		drawer.DrawDot(2, Ground(cr.ClawPosition()), Pink.Color(), data)
	}

	if flags&DrawClawBox != 0 {
		DrawFootprint(Footprint(cr.ClawBounds().Box), Pink.Color(), drawer)
	}
}
