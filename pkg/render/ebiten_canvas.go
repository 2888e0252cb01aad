package render

import (
	"image/color"

	"github.com/decker502/scanfx/pkg/geom"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas 在 ebiten 图像上绘制场景线框
type EbitenCanvas struct {
	Target    *ebiten.Image
	Projector Projector

	// LineWidth 线宽（像素）
	LineWidth float32
}

// Line 实现 Canvas
func (c *EbitenCanvas) Line(a, b geom.Vec3, clr color.RGBA) {
	x0, y0, x1, y1, ok := c.Projector.ProjectSegment(a, b)
	if !ok {
		return
	}
	w := c.LineWidth
	if w <= 0 {
		w = 1
	}
	vector.StrokeLine(c.Target, float32(x0), float32(y0), float32(x1), float32(y1), w, clr, true)
}

// Sphere 实现 Canvas，球体绘制为实心圆
func (c *EbitenCanvas) Sphere(center geom.Vec3, radius float64, clr color.RGBA) {
	sx, sy, depth, ok := c.Projector.Project(center)
	if !ok {
		return
	}
	r := radius * c.Projector.PixelsPerUnit(depth)
	if !c.Projector.InBounds(sx, sy, r) {
		return
	}
	vector.DrawFilledCircle(c.Target, float32(sx), float32(sy), float32(max(r, 1)), clr, true)
}
