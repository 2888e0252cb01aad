package systems

import (
	"math"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/physics"
)

const (
	// restSpeed 法向速度低于该值时视为静止，避免落地后无限弹跳
	restSpeed = 0.3
	// groundFriction 接触地面时水平速度每秒衰减比例
	groundFriction = 1.5
)

// PhysicsSystem 处理动态球体的运动与碰撞
//
// 动态实体: Transform + Velocity + Collider(Sphere, Static=false)
// 每帧先积分重力与速度，再与其他碰撞体做穿透修正和反弹。
// 两层之间是否碰撞由 LayerMatrix 决定。
type PhysicsSystem struct {
	em      *ecs.EntityManager
	matrix  *physics.LayerMatrix
	gravity float64
	bounce  float64

	bodies []physics.Body
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - matrix: 层间碰撞矩阵
//   - gravity: 重力加速度（向下为正）
//   - bounce: 反弹系数 0~1
func NewPhysicsSystem(em *ecs.EntityManager, matrix *physics.LayerMatrix, gravity, bounce float64) *PhysicsSystem {
	return &PhysicsSystem{
		em:      em,
		matrix:  matrix,
		gravity: gravity,
		bounce:  bounce,
	}
}

type dynamicBody struct {
	id     ecs.EntityID
	tr     *components.TransformComponent
	vel    *components.VelocityComponent
	layer  physics.Layer
	radius float64
}

// Update 推进一帧物理
func (ps *PhysicsSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}

	dynamics := ps.collectDynamics()
	for _, d := range dynamics {
		d.vel.Linear.Y -= ps.gravity * dt
		d.tr.Position = d.tr.Position.Add(d.vel.Linear.Scale(dt))
	}

	ps.bodies = CollectBodies(ps.em, ps.bodies)
	for _, d := range dynamics {
		ps.resolve(d, dt)
	}
}

func (ps *PhysicsSystem) collectDynamics() []dynamicBody {
	ids := ecs.GetEntitiesWith3[*components.TransformComponent, *components.VelocityComponent, *components.ColliderComponent](ps.em)
	dynamics := make([]dynamicBody, 0, len(ids))
	for _, id := range ids {
		if ps.em.IsMarkedForDestroy(id) {
			continue
		}
		col, _ := ecs.GetComponent[*components.ColliderComponent](ps.em, id)
		sphere, ok := col.Shape.(physics.Sphere)
		if col.Static || !ok {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		dynamics = append(dynamics, dynamicBody{
			id:     id,
			tr:     tr,
			vel:    vel,
			layer:  col.Layer,
			radius: sphere.Radius,
		})
	}
	return dynamics
}

// resolve 修正 d 与所有碰撞体的穿透
func (ps *PhysicsSystem) resolve(d dynamicBody, dt float64) {
	for i := range ps.bodies {
		b := &ps.bodies[i]
		if b.Ref == uint64(d.id) || !ps.matrix.ShouldCollide(d.layer, b.Layer) {
			continue
		}

		contact, ok := physics.SphereContact(d.tr.Position, d.radius, b.Shape, b.Center)
		if !ok {
			continue
		}

		depth := contact.Depth
		if ecs.HasComponent[*components.VelocityComponent](ps.em, ecs.EntityID(b.Ref)) {
			// 两个动态体各承担一半
			depth /= 2
		}
		d.tr.Position = d.tr.Position.Add(contact.Normal.Scale(depth))

		vn := d.vel.Linear.Dot(contact.Normal)
		if vn < 0 {
			d.vel.Linear = d.vel.Linear.Sub(contact.Normal.Scale((1 + ps.bounce) * vn))
			if math.Abs(d.vel.Linear.Dot(contact.Normal)) < restSpeed {
				d.vel.Linear = d.vel.Linear.Sub(contact.Normal.Scale(d.vel.Linear.Dot(contact.Normal)))
			}
		}

		if contact.Normal.Y > 0.7 {
			k := math.Max(0, 1-groundFriction*dt)
			d.vel.Linear.X *= k
			d.vel.Linear.Z *= k
		}
	}
}
