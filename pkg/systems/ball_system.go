package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/config"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/physics"
)

// BallSystem 自毁小球
//
// 小球创建时随机选择自毁延迟和蓝色色调，到期由 LifetimeSystem 标记删除；
// DestroyBall 可以跳过计时立即删除。
type BallSystem struct {
	entityManager *ecs.EntityManager
	matrix        *physics.LayerMatrix
	cfg           config.BallConfig
	layer         physics.Layer
	rng           *rand.Rand
}

// NewBallSystem 创建小球系统
func NewBallSystem(em *ecs.EntityManager, matrix *physics.LayerMatrix, cfg config.BallConfig, layer physics.Layer, rng *rand.Rand) *BallSystem {
	return &BallSystem{
		entityManager: em,
		matrix:        matrix,
		cfg:           cfg,
		layer:         layer,
		rng:           rng,
	}
}

// Layer 返回小球所在碰撞层
func (s *BallSystem) Layer() physics.Layer {
	return s.layer
}

// Spawn 在 pos 处创建一个静止的小球
func (s *BallSystem) Spawn(pos geom.Vec3, now float64) ecs.EntityID {
	return s.SpawnWithVelocity(pos, geom.Zero, now)
}

// SpawnWithVelocity 在 pos 处创建一个带初速度的小球
func (s *BallSystem) SpawnWithVelocity(pos, velocity geom.Vec3, now float64) ecs.EntityID {
	// 小球之间互不碰撞，重复设置是幂等的
	s.matrix.IgnoreLayerCollision(s.layer, s.layer, true)

	delay := s.cfg.DestroyDelay.Lerp(s.rng.Float64())
	tint := components.RGB{B: s.cfg.Blue.Lerp(s.rng.Float64())}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{Position: pos})
	ecs.AddComponent(s.entityManager, id, &components.VelocityComponent{Linear: velocity})
	ecs.AddComponent(s.entityManager, id, &components.ColliderComponent{
		Shape: physics.Sphere{Radius: s.cfg.Radius},
		Layer: s.layer,
	})
	ecs.AddComponent(s.entityManager, id, &components.BallComponent{
		Tint:         tint,
		Radius:       s.cfg.Radius,
		DestroyDelay: delay,
	})
	ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{
		SpawnedAt:   now,
		MaxLifetime: delay,
	})

	log.Printf("[BallSystem] Spawned ball %d at (%.2f, %.2f, %.2f), destroy in %.2fs", id, pos.X, pos.Y, pos.Z, delay)
	return id
}

// SpawnInFront 在相机前方生成小球，并沿相机前方给予初速度
func (s *BallSystem) SpawnInFront(eye geom.Vec3, basis geom.Basis, now float64) ecs.EntityID {
	pos := eye.Add(basis.Forward.Scale(s.cfg.SpawnDistance))
	return s.SpawnWithVelocity(pos, basis.Forward.Scale(s.cfg.SpawnSpeed), now)
}

// DestroyBall 立即标记小球待删除，跳过自毁计时
// 实体在本帧末尾回收；id 不是小球时返回 false
func (s *BallSystem) DestroyBall(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.BallComponent](s.entityManager, id) {
		return false
	}
	if s.entityManager.IsMarkedForDestroy(id) {
		return false
	}
	s.entityManager.DestroyEntity(id)
	log.Printf("[BallSystem] Ball %d destroyed", id)
	return true
}

// Count 返回存活（未标记删除）的小球数量
func (s *BallSystem) Count() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			n++
		}
	}
	return n
}
