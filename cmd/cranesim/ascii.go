package main

import (
	"io"
	"math"
	"strings"

	"github.com/setanarut/crane"
	"github.com/setanarut/vec"
)

// asciiDrawer rasterizes the plan view onto a character grid. One cell
// covers cell world units; Z grows downward.
type asciiDrawer struct {
	bb    crane.BB
	cell  float64
	cols  int
	rows  int
	grid  [][]rune
	flags uint
}

func newASCIIDrawer(bb crane.BB, cell float64) *asciiDrawer {
	d := &asciiDrawer{
		bb:    bb,
		cell:  cell,
		cols:  int(math.Ceil((bb.R - bb.L) / cell)),
		rows:  int(math.Ceil((bb.T - bb.B) / cell)),
		flags: crane.DrawCrates | crane.DrawContainer | crane.DrawCrane,
	}
	d.grid = make([][]rune, d.rows)
	for i := range d.grid {
		d.grid[i] = []rune(strings.Repeat(".", d.cols))
	}
	return d
}

func (d *asciiDrawer) plot(p vec.Vec2, r rune) {
	if !d.bb.ContainsVect(p) {
		return
	}
	col := int((p.X - d.bb.L) / d.cell)
	row := int((p.Y - d.bb.B) / d.cell)
	if col >= 0 && col < d.cols && row >= 0 && row < d.rows {
		d.grid[row][col] = r
	}
}

// glyph picks a character for a color so materials stay distinguishable.
func glyph(c crane.FColor) rune {
	switch c {
	case crane.CoffeeBrown.Color():
		return 'c'
	case crane.Red.Color():
		return 'r'
	case crane.Pink.Color():
		return '+'
	case crane.Grey.Color():
		return 'o'
	case crane.LightOrange.Color():
		return 'T'
	default:
		return '#'
	}
}

func (d *asciiDrawer) DrawSegment(a, b vec.Vec2, fill crane.FColor, _ any) {
	steps := int(math.Ceil(b.Sub(a).Mag()/d.cell*2)) + 1
	for i := 0; i <= steps; i++ {
		d.plot(a.Lerp(b, float64(i)/float64(steps)), '=')
	}
}

func (d *asciiDrawer) DrawPolygon(count int, verts []vec.Vec2, _, fill crane.FColor, data any) {
	g := glyph(fill)
	for i := range count {
		a, b := verts[i], verts[(i+1)%count]
		steps := int(math.Ceil(b.Sub(a).Mag()/d.cell*2)) + 1
		for j := 0; j <= steps; j++ {
			d.plot(a.Lerp(b, float64(j)/float64(steps)), g)
		}
	}
}

func (d *asciiDrawer) DrawDot(_ float64, pos vec.Vec2, fill crane.FColor, _ any) {
	d.plot(pos, glyph(fill))
}

func (d *asciiDrawer) Flags() uint {
	return d.flags
}

func (d *asciiDrawer) OutlineColor() crane.FColor {
	return crane.FColor{A: 1}
}

func (d *asciiDrawer) Data() any {
	return nil
}

func (d *asciiDrawer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, row := range d.grid {
		m, err := io.WriteString(w, string(row)+"\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
