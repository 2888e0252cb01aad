package systems

import (
	"image/color"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/physics"
	"github.com/decker502/scanfx/pkg/render"
)

var (
	gridColor = color.RGBA{R: 40, G: 48, B: 64, A: 255}
	boxColor  = color.RGBA{R: 110, G: 120, B: 140, A: 255}
)

// SceneRenderSystem 绘制场景几何：地面网格、静态盒子、小球
type SceneRenderSystem struct {
	entityManager *ecs.EntityManager

	// GridHalfSize 地面网格半边长，GridStep 网格间距
	GridHalfSize float64
	GridStep     float64
}

// NewSceneRenderSystem 创建场景渲染系统
func NewSceneRenderSystem(em *ecs.EntityManager) *SceneRenderSystem {
	return &SceneRenderSystem{
		entityManager: em,
		GridHalfSize:  20,
		GridStep:      2,
	}
}

// Draw 将场景绘制到 canvas
func (s *SceneRenderSystem) Draw(canvas render.Canvas) {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.ColliderComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)

		switch shape := col.Shape.(type) {
		case physics.Plane:
			s.drawGrid(canvas, tr.Position.Y)
		case physics.Box:
			drawBox(canvas, tr.Position, shape.HalfExtents)
		case physics.Sphere:
			c := color.RGBA{R: 200, G: 200, B: 200, A: 255}
			if ball, ok := ecs.GetComponent[*components.BallComponent](s.entityManager, id); ok {
				c = color.RGBA{
					R: uint8(ball.Tint.R * 255),
					G: uint8(ball.Tint.G * 255),
					B: uint8(ball.Tint.B * 255),
					A: 255,
				}
			}
			canvas.Sphere(tr.Position, shape.Radius, c)
		}
	}
}

// drawGrid 在高度 y 处绘制地面网格
func (s *SceneRenderSystem) drawGrid(canvas render.Canvas, y float64) {
	if s.GridStep <= 0 {
		return
	}
	h := s.GridHalfSize
	for v := -h; v <= h+1e-9; v += s.GridStep {
		canvas.Line(geom.Vec3{X: v, Y: y, Z: -h}, geom.Vec3{X: v, Y: y, Z: h}, gridColor)
		canvas.Line(geom.Vec3{X: -h, Y: y, Z: v}, geom.Vec3{X: h, Y: y, Z: v}, gridColor)
	}
}

// drawBox 绘制轴对齐盒的 12 条棱
func drawBox(canvas render.Canvas, center, half geom.Vec3) {
	var corners [8]geom.Vec3
	for i := range corners {
		corners[i] = geom.Vec3{
			X: center.X + sign(i&1)*half.X,
			Y: center.Y + sign(i&2)*half.Y,
			Z: center.Z + sign(i&4)*half.Z,
		}
	}
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				canvas.Line(corners[i], corners[i|bit], boxColor)
			}
		}
	}
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}
