package systems

import (
	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 检查所有拥有生命周期组件的实体，到期的标记待删除
// 返回本帧新过期的实体，已被其他途径标记删除的实体不计入
func (s *LifetimeSystem) Update(now float64) []ecs.EntityID {
	var expired []ecs.EntityID

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired || s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		if now >= lifetime.ExpiresAt() {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
			expired = append(expired, id)
		}
	}

	return expired
}
