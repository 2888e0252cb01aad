package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/render"
	"github.com/decker502/scanfx/pkg/scan"
)

// testProjector 80x24 终端，视线沿 +Z，焦距 12 行
func testProjector() render.Projector {
	return render.Projector{
		Basis:      geom.BasisFromYawPitch(0, 0),
		FOV:        math.Pi / 2,
		Near:       0.1,
		Width:      80,
		Height:     24,
		CellAspect: cellAspect,
	}
}

func newTestCells() *cellBuffer {
	b := newCellBuffer()
	b.Begin(80, 24, testProjector())
	return b
}

func pointAt(pos geom.Vec3) geom.Mat4 {
	return geom.TRS(pos, geom.IdentityQuat(), geom.Vec3{X: 0.01, Y: 0.01, Z: 0.01})
}

func TestDrawMeshInstancedAccumulates(t *testing.T) {
	b := newTestCells()
	transforms := []geom.Mat4{pointAt(geom.Vec3{Z: 10}), pointAt(geom.Vec3{Z: 10})}
	colors := []scan.Color{{B: 0.5, A: 1}, {B: 0.5, A: 1}}

	b.DrawMeshInstanced(render.QuadMesh(), render.ScanPointMaterial(), transforms, colors, 2)

	if b.Calls != 1 || b.Instances != 2 {
		t.Fatalf("Calls=%d Instances=%d, want 1 and 2", b.Calls, b.Instances)
	}
	c := b.At(40, 12)
	if c.points != 2 {
		t.Fatalf("points = %d, want 2", c.points)
	}
	if c.glyph != ':' {
		t.Errorf("glyph = %q, want ':'", c.glyph)
	}
	if _, _, blue := c.rgb(); blue != 255 {
		t.Errorf("additive blue = %d, want 255", blue)
	}
}

func TestDrawMeshInstancedOpaqueReplaces(t *testing.T) {
	b := newTestCells()
	transforms := []geom.Mat4{pointAt(geom.Vec3{Z: 10}), pointAt(geom.Vec3{Z: 10})}
	colors := []scan.Color{{B: 0.5, A: 1}, {B: 0.5, A: 1}}

	b.DrawMeshInstanced(render.QuadMesh(), &render.Material{Name: "opaque"}, transforms, colors, 2)

	if _, _, blue := b.At(40, 12).rgb(); blue != 127 {
		t.Errorf("opaque blue = %d, want 127", blue)
	}
}

func TestDrawMeshInstancedSkipsHidden(t *testing.T) {
	b := newTestCells()
	transforms := []geom.Mat4{
		pointAt(geom.Vec3{Z: -1}),         // 相机后方
		pointAt(geom.Vec3{X: 100, Z: 10}), // 画面外
		pointAt(geom.Vec3{X: 1, Z: 10}),
	}
	colors := make([]scan.Color, len(transforms))

	b.DrawMeshInstanced(render.QuadMesh(), render.ScanPointMaterial(), transforms, colors, len(transforms))

	if b.Instances != 1 {
		t.Errorf("Instances = %d, want 1", b.Instances)
	}
	// x = 40 + 1*12*2/10 = 42.4
	if b.At(42, 12).points != 1 {
		t.Error("visible point should land on cell (42, 12)")
	}
}

func TestDrawMeshInstancedEmpty(t *testing.T) {
	b := newTestCells()
	b.DrawMeshInstanced(render.QuadMesh(), render.ScanPointMaterial(), nil, nil, 5)
	if b.Calls != 0 {
		t.Errorf("Calls = %d, want 0 for an empty batch", b.Calls)
	}
}

func TestLine(t *testing.T) {
	b := newTestCells()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	b.Line(geom.Vec3{X: -1, Z: 10}, geom.Vec3{X: 1, Z: 10}, white)

	for x := 38; x <= 42; x++ {
		if g := b.At(x, 12).glyph; g != '-' {
			t.Errorf("cell (%d, 12) glyph = %q, want '-'", x, g)
		}
	}
	if b.At(40, 11).glyph != 0 {
		t.Error("horizontal line should stay on one row")
	}

	// 完全在相机后方的线段不绘制
	b.Begin(80, 24, testProjector())
	b.Line(geom.Vec3{X: -1, Z: -5}, geom.Vec3{X: 1, Z: -5}, white)
	for i := range b.cells {
		if b.cells[i].glyph != 0 {
			t.Fatal("segment behind the camera should not be drawn")
		}
	}
}

func TestLineKeepsPoints(t *testing.T) {
	b := newTestCells()
	b.DrawMeshInstanced(render.QuadMesh(), render.ScanPointMaterial(),
		[]geom.Mat4{pointAt(geom.Vec3{Z: 10})}, []scan.Color{{B: 1, A: 1}}, 1)

	b.Line(geom.Vec3{X: -1, Z: 10}, geom.Vec3{X: 1, Z: 10}, color.RGBA{R: 255, A: 255})

	if g := b.At(40, 12).glyph; g != '.' {
		t.Errorf("glyph = %q, want the scan point to stay on top", g)
	}
}

func TestSphere(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	b := newTestCells()
	b.Sphere(geom.Vec3{Z: 10}, 0.01, red)
	if g := b.At(40, 12).glyph; g != 'o' {
		t.Errorf("tiny sphere glyph = %q, want 'o'", g)
	}

	// 半径 1：ry = 1.2 行，rx = 2.4 列
	b.Begin(80, 24, testProjector())
	b.Sphere(geom.Vec3{Z: 10}, 1, red)
	if g := b.At(40, 12).glyph; g != 'O' {
		t.Errorf("center glyph = %q, want 'O'", g)
	}
	if g := b.At(44, 12).glyph; g != 0 {
		t.Errorf("cell outside the radius glyph = %q, want empty", g)
	}
}

func TestBeginResets(t *testing.T) {
	b := newTestCells()
	b.Sphere(geom.Vec3{Z: 10}, 0.01, color.RGBA{A: 255})

	b.Begin(10, 5, testProjector())
	if len(b.cells) != 50 {
		t.Fatalf("len(cells) = %d, want 50", len(b.cells))
	}
	for i := range b.cells {
		if b.cells[i] != (cell{}) {
			t.Fatal("Begin should clear every cell")
		}
	}
	if b.At(10, 0) != nil || b.At(0, 5) != nil || b.At(-1, 0) != nil {
		t.Error("At should return nil outside the grid")
	}
}

func TestLineGlyph(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{10, 0, '-'},
		{0, 10, '|'},
		{5, 5, '\\'},
		{-5, -5, '\\'},
		{5, -5, '/'},
		{10, 3, '-'},
	}
	for _, tt := range tests {
		if got := lineGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("lineGlyph(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestPointGlyph(t *testing.T) {
	tests := []struct {
		points int
		want   rune
	}{
		{1, '.'},
		{2, ':'},
		{3, ':'},
		{8, '+'},
		{9, '*'},
		{26, '*'},
		{27, '#'},
		{10000, '#'},
	}
	for _, tt := range tests {
		if got := pointGlyph(tt.points); got != tt.want {
			t.Errorf("pointGlyph(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}
