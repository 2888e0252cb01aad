package render

import (
	"image"
	"image/color"

	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/scan"
	"github.com/hajimehoshi/ebiten/v2"
)

// additiveBlend 加法混合（发光效果）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// EbitenInstancedDrawer 基于 ebiten 的实例化绘制器
//
// 每个实例投影为面向相机的四边形，所有实例合并为一次 DrawTriangles32 提交。
// 顶点和索引数组在帧之间复用。
type EbitenInstancedDrawer struct {
	target    *ebiten.Image
	projector Projector

	white *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint32

	// Calls 累计提交次数，Instances 最近一次提交的可见实例数
	Calls     int
	Instances int
}

// NewEbitenInstancedDrawer 创建绘制器
func NewEbitenInstancedDrawer() *EbitenInstancedDrawer {
	return &EbitenInstancedDrawer{}
}

// Begin 设置本帧的绘制目标和投影
func (d *EbitenInstancedDrawer) Begin(target *ebiten.Image, projector Projector) {
	d.target = target
	d.projector = projector
}

// DrawMeshInstanced 实现 InstancedDrawer
func (d *EbitenInstancedDrawer) DrawMeshInstanced(mesh *Mesh, material *Material, transforms []geom.Mat4, colors []scan.Color, count int) {
	if d.target == nil || mesh == nil || material == nil {
		return
	}

	d.Instances = d.buildBatch(mesh, material, transforms, colors, count)
	if len(d.indices) == 0 {
		return
	}

	if d.white == nil {
		// 取 3x3 白图的中心像素作为纯色纹理，避免边缘采样
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		d.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	op := &ebiten.DrawTrianglesOptions{}
	if material.Additive {
		op.Blend = additiveBlend
	}
	d.target.DrawTriangles32(d.vertices, d.indices, d.white, op)
	d.Calls++
}

// buildBatch 把可见实例展开为顶点和索引，返回可见实例数
func (d *EbitenInstancedDrawer) buildBatch(mesh *Mesh, material *Material, transforms []geom.Mat4, colors []scan.Color, count int) int {
	d.vertices = d.vertices[:0]
	d.indices = d.indices[:0]

	count = min(count, len(transforms), len(colors))
	visible := 0
	for i := 0; i < count; i++ {
		m := &transforms[i]
		sx, sy, depth, ok := d.projector.Project(m.Translation())
		if !ok {
			continue
		}

		size := float32(m.LossyScale().X * d.projector.PixelsPerUnit(depth))
		if size < material.MinPixelSize {
			size = material.MinPixelSize
		}
		if !d.projector.InBounds(sx, sy, float64(size)) {
			continue
		}

		c := colors[i]
		base := uint32(len(d.vertices))
		for _, v := range mesh.Vertices {
			d.vertices = append(d.vertices, ebiten.Vertex{
				DstX:   float32(sx) + float32(v.X)*size,
				DstY:   float32(sy) - float32(v.Y)*size,
				SrcX:   1,
				SrcY:   1,
				ColorR: c.R,
				ColorG: c.G,
				ColorB: c.B,
				ColorA: c.A,
			})
		}
		for _, idx := range mesh.Indices {
			d.indices = append(d.indices, base+uint32(idx))
		}
		visible++
	}
	return visible
}
