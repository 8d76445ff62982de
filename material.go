package crane

import "fmt"

// Material names an entry of the crane's palette.
type Material uint8

const (
	NoMaterial Material = iota
	Grey
	DarkOrange
	LightOrange
	LightBlue
	Red
	CoffeeBrown
	Pink
	Purple
)

// RGB converts a 0xRRGGBB value to an opaque FColor.
func RGB(hex uint32) FColor {
	return FColor{
		R: float32(hex>>16&0xff) / 255,
		G: float32(hex>>8&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

var palette = map[Material]uint32{
	Grey:        0x727272,
	DarkOrange:  0xfc6d00,
	LightOrange: 0xfcc100,
	LightBlue:   0x85e6fc,
	Red:         0xa52a2a,
	CoffeeBrown: 0x6f4e37,
	Pink:        0xff1493,
	Purple:      0xb600ff,
}

// Color returns the display color of m.
func (m Material) Color() FColor {
	if hex, ok := palette[m]; ok {
		return RGB(hex)
	}
	return FColor{}
}

// DoubleSided reports whether faces of m are visible from behind.
// The claw fingers and pendants are open meshes.
func (m Material) DoubleSided() bool {
	return m == Pink || m == Purple
}

func (m Material) String() string {
	switch m {
	case NoMaterial:
		return "none"
	case Grey:
		return "grey"
	case DarkOrange:
		return "darkOrange"
	case LightOrange:
		return "lightOrange"
	case LightBlue:
		return "lightBlue"
	case Red:
		return "red"
	case CoffeeBrown:
		return "coffeeBrown"
	case Pink:
		return "pink"
	case Purple:
		return "purple"
	default:
		return fmt.Sprintf("Material(%d)", uint8(m))
	}
}

// ParseMaterial returns the material with the given name.
func ParseMaterial(name string) (Material, error) {
	for m := Grey; m <= Purple; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return NoMaterial, fmt.Errorf("unknown material %q", name)
}
