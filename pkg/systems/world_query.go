package systems

import (
	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/physics"
)

// CollectBodies 将所有拥有 Transform + Collider 的实体快照为射线检测用的 Body 列表
// dst 会被复用（截断后追加），已标记删除的实体不参与检测
func CollectBodies(em *ecs.EntityManager, dst []physics.Body) []physics.Body {
	dst = dst[:0]
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.ColliderComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		col, _ := ecs.GetComponent[*components.ColliderComponent](em, id)
		if col.Shape == nil {
			continue
		}
		dst = append(dst, physics.Body{
			Ref:    uint64(id),
			Shape:  col.Shape,
			Center: tr.Position,
			Layer:  col.Layer,
		})
	}
	return dst
}

// RaycastEntities 对当前世界做一次射线检测，返回最近命中的实体
func RaycastEntities(em *ecs.EntityManager, ray geom.Ray, maxDist float64, mask physics.LayerMask) (ecs.EntityID, physics.RaycastHit, bool) {
	hit, ok := physics.Raycast(CollectBodies(em, nil), ray, maxDist, mask)
	if !ok {
		return 0, physics.RaycastHit{}, false
	}
	return ecs.EntityID(hit.Ref), hit, true
}
