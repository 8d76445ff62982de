package crane

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraID selects one of the fixed viewpoints.
type CameraID uint8

const (
	Frontal CameraID = iota + 1
	Lateral
	Top
	BroadOrthographic
	BroadPerspective
	ClawCamera
)

func (id CameraID) String() string {
	switch id {
	case Frontal:
		return "frontal"
	case Lateral:
		return "lateral"
	case Top:
		return "top"
	case BroadOrthographic:
		return "broadOrthographic"
	case BroadPerspective:
		return "broadPerspective"
	case ClawCamera:
		return "claw"
	default:
		return fmt.Sprintf("CameraID(%d)", uint8(id))
	}
}

// Camera is a viewpoint handed to the renderer. Projection parameters
// beyond these stay with the renderer.
type Camera struct {
	ID       CameraID
	Position mgl64.Vec3
	Target   mgl64.Vec3
	// Orthographic cameras use ViewSize; perspective ones use FOV (degrees).
	Orthographic bool
	ViewSize     float64
	FOV          float64
}

// View returns the view matrix of c.
func (c Camera) View() mgl64.Mat4 {
	up := YAxis
	if c.ID == Top || c.ID == ClawCamera {
		up = mgl64.Vec3{0, 0, -1}
	}
	return mgl64.LookAtV(c.Position, c.Target, up)
}

var fixedCameras = map[CameraID]Camera{
	Frontal:           {ID: Frontal, Position: mgl64.Vec3{100, 30, 0}, Target: mgl64.Vec3{0, 30, 0}, Orthographic: true, ViewSize: 70},
	Lateral:           {ID: Lateral, Position: mgl64.Vec3{0, 30, 70}, Target: mgl64.Vec3{0, 30, 0}, Orthographic: true, ViewSize: 70},
	Top:               {ID: Top, Position: mgl64.Vec3{0, 70, 0}, Target: mgl64.Vec3{0, 0, 0}, Orthographic: true, ViewSize: 70},
	BroadOrthographic: {ID: BroadOrthographic, Position: mgl64.Vec3{40, 40, 40}, Target: mgl64.Vec3{0, 25, 0}, Orthographic: true, ViewSize: 70},
	BroadPerspective:  {ID: BroadPerspective, Position: mgl64.Vec3{40, 40, 40}, Target: mgl64.Vec3{0, 25, 0}, FOV: 70},
}

// cameraFor returns camera id. The claw camera hangs at the claw and looks
// straight down.
func cameraFor(id CameraID, c *Crane) Camera {
	if id == ClawCamera {
		p := c.ClawPosition()
		return Camera{ID: ClawCamera, Position: p, Target: p.Sub(YAxis), FOV: 70}
	}
	cam, ok := fixedCameras[id]
	if !ok {
		return fixedCameras[BroadPerspective]
	}
	return cam
}
