package main

import (
	"image/color"
	"math"

	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/render"
	"github.com/decker502/scanfx/pkg/scan"
)

// cellAspect 终端字符的高宽比
const cellAspect = 2.0

// pointGlyphs 按累积亮度从低到高选择扫描点字符
var pointGlyphs = []rune{'.', ':', '+', '*', '#'}

// cell 终端网格中的一个字符单元
type cell struct {
	glyph rune
	r     float32
	g     float32
	b     float32
	// points 本帧落入该单元的扫描点数量
	points int
}

// cellBuffer 字符网格画布，同时实现 render.Canvas 和 render.InstancedDrawer
type cellBuffer struct {
	width     int
	height    int
	cells     []cell
	projector render.Projector

	// Calls/Instances 本帧的实例化绘制统计
	Calls     int
	Instances int
}

var (
	_ render.Canvas          = (*cellBuffer)(nil)
	_ render.InstancedDrawer = (*cellBuffer)(nil)
)

func newCellBuffer() *cellBuffer {
	return &cellBuffer{}
}

// Begin 按终端尺寸重置网格并设置投影
func (b *cellBuffer) Begin(width, height int, projector render.Projector) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := width * height
	if cap(b.cells) < n {
		b.cells = make([]cell, n)
	} else {
		b.cells = b.cells[:n]
		clear(b.cells)
	}
	b.width, b.height = width, height
	b.projector = projector
	b.Calls, b.Instances = 0, 0
}

// At 返回单元，越界时返回 nil
func (b *cellBuffer) At(x, y int) *cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return nil
	}
	return &b.cells[y*b.width+x]
}

// set 写入线框字符，不覆盖扫描点
func (b *cellBuffer) set(x, y int, glyph rune, c color.RGBA) {
	cl := b.At(x, y)
	if cl == nil || cl.points > 0 {
		return
	}
	cl.glyph = glyph
	cl.r = float32(c.R) / 255
	cl.g = float32(c.G) / 255
	cl.b = float32(c.B) / 255
}

// Line 实现 render.Canvas
func (b *cellBuffer) Line(p0, p1 geom.Vec3, c color.RGBA) {
	x0, y0, x1, y1, ok := b.projector.ProjectSegment(p0, p1)
	if !ok {
		return
	}

	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps > 4*(b.width+b.height) {
		// 贴近近裁剪面的线段投影极长，只画屏幕附近的部分
		steps = 4 * (b.width + b.height)
	}
	glyph := lineGlyph(dx, dy)
	if steps == 0 {
		b.set(int(math.Floor(x0)), int(math.Floor(y0)), glyph, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.set(int(math.Floor(x0+dx*t)), int(math.Floor(y0+dy*t)), glyph, c)
	}
}

// lineGlyph 根据屏幕方向选择线框字符
func lineGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= ax*0.5:
		return '-'
	case ax <= ay*0.5:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// Sphere 实现 render.Canvas，按字符高宽比画出实心圆
func (b *cellBuffer) Sphere(center geom.Vec3, radius float64, c color.RGBA) {
	sx, sy, depth, ok := b.projector.Project(center)
	if !ok {
		return
	}
	ry := radius * b.projector.PixelsPerUnit(depth)
	rx := ry * cellAspect
	if ry < 0.5 {
		b.set(int(math.Floor(sx)), int(math.Floor(sy)), 'o', c)
		return
	}

	for y := int(math.Floor(sy - ry)); y <= int(math.Ceil(sy+ry)); y++ {
		for x := int(math.Floor(sx - rx)); x <= int(math.Ceil(sx+rx)); x++ {
			nx := (float64(x) + 0.5 - sx) / rx
			ny := (float64(y) + 0.5 - sy) / ry
			if nx*nx+ny*ny <= 1 {
				b.set(x, y, 'O', c)
			}
		}
	}
}

// DrawMeshInstanced 实现 render.InstancedDrawer
//
// 每个实例落在一个字符单元上，加法材质在单元内累积颜色。
func (b *cellBuffer) DrawMeshInstanced(mesh *render.Mesh, material *render.Material, transforms []geom.Mat4, colors []scan.Color, count int) {
	if count > len(transforms) {
		count = len(transforms)
	}
	if count <= 0 {
		return
	}
	b.Calls++

	additive := material != nil && material.Additive
	for i := 0; i < count; i++ {
		sx, sy, _, ok := b.projector.Project(transforms[i].Translation())
		if !ok {
			continue
		}
		cl := b.At(int(math.Floor(sx)), int(math.Floor(sy)))
		if cl == nil {
			continue
		}
		b.Instances++

		var col scan.Color
		if i < len(colors) {
			col = colors[i]
		}
		if cl.points == 0 || !additive {
			cl.r, cl.g, cl.b = 0, 0, 0
		}
		cl.r += col.R * col.A
		cl.g += col.G * col.A
		cl.b += col.B * col.A
		cl.points++
		cl.glyph = pointGlyph(cl.points)
	}
}

// pointGlyph 按单元内的点数选择字符
func pointGlyph(points int) rune {
	switch {
	case points >= 27:
		return pointGlyphs[4]
	case points >= 9:
		return pointGlyphs[3]
	case points >= 4:
		return pointGlyphs[2]
	case points >= 2:
		return pointGlyphs[1]
	default:
		return pointGlyphs[0]
	}
}

// rgb 返回单元的 8 位颜色，加法累积的亮度被截断到 255
func (c *cell) rgb() (int32, int32, int32) {
	return channel(c.r), channel(c.g), channel(c.b)
}

func channel(v float32) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v * 255)
}
