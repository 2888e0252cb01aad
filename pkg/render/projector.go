package render

import (
	"math"

	"github.com/decker502/scanfx/pkg/geom"
)

// Projector 透视投影，将世界坐标映射到屏幕坐标
type Projector struct {
	Eye    geom.Vec3
	Basis  geom.Basis
	FOV    float64 // 垂直视场角（弧度）
	Near   float64
	Width  float64
	Height float64

	// CellAspect 屏幕单元的高宽比，像素屏幕为 1，终端字符约为 2
	CellAspect float64
}

// NewProjector 创建像素屏幕使用的投影
func NewProjector(eye geom.Vec3, basis geom.Basis, fov, near, width, height float64) Projector {
	return Projector{
		Eye:        eye,
		Basis:      basis,
		FOV:        fov,
		Near:       near,
		Width:      width,
		Height:     height,
		CellAspect: 1,
	}
}

// focal 垂直方向的焦距（屏幕单元）
func (p Projector) focal() float64 {
	return (p.Height / 2) / math.Tan(p.FOV/2)
}

// ToView 将世界坐标转换到相机空间 (right, up, forward)
func (p Projector) ToView(world geom.Vec3) geom.Vec3 {
	d := world.Sub(p.Eye)
	return geom.Vec3{
		X: d.Dot(p.Basis.Right),
		Y: d.Dot(p.Basis.Up),
		Z: d.Dot(p.Basis.Forward),
	}
}

// viewToScreen 相机空间到屏幕坐标，调用方保证 v.Z >= Near
func (p Projector) viewToScreen(v geom.Vec3) (float64, float64) {
	f := p.focal()
	aspect := p.CellAspect
	if aspect <= 0 {
		aspect = 1
	}
	sx := p.Width/2 + v.X*f*aspect/v.Z
	sy := p.Height/2 - v.Y*f/v.Z
	return sx, sy
}

// Project 投影一个世界坐标点
// 返回屏幕坐标、深度，以及该点是否位于近裁剪面之前
func (p Projector) Project(world geom.Vec3) (sx, sy, depth float64, ok bool) {
	v := p.ToView(world)
	if v.Z < p.Near {
		return 0, 0, v.Z, false
	}
	sx, sy = p.viewToScreen(v)
	return sx, sy, v.Z, true
}

// PixelsPerUnit 深度 depth 处每世界单位对应的屏幕单元数（垂直方向）
func (p Projector) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return p.focal() / depth
}

// ProjectSegment 投影一条线段，并在近裁剪面处裁剪
func (p Projector) ProjectSegment(a, b geom.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	va := p.ToView(a)
	vb := p.ToView(b)

	if va.Z < p.Near && vb.Z < p.Near {
		return 0, 0, 0, 0, false
	}
	if va.Z < p.Near {
		va = geom.Lerp(va, vb, (p.Near-va.Z)/(vb.Z-va.Z))
	} else if vb.Z < p.Near {
		vb = geom.Lerp(vb, va, (p.Near-vb.Z)/(va.Z-vb.Z))
	}

	x0, y0 = p.viewToScreen(va)
	x1, y1 = p.viewToScreen(vb)
	return x0, y0, x1, y1, true
}

// InBounds 判断屏幕坐标是否在画面内（含 margin 容差）
func (p Projector) InBounds(sx, sy, margin float64) bool {
	return sx >= -margin && sy >= -margin && sx <= p.Width+margin && sy <= p.Height+margin
}
