package physics

import "github.com/decker502/scanfx/pkg/geom"

// Body 参与射线检测的碰撞体快照
// Ref 由调用方填入（通常是实体ID），检测结果原样带回
type Body struct {
	Ref    uint64
	Shape  Shape
	Center geom.Vec3
	Layer  Layer
}

// RaycastHit 最近命中结果
type RaycastHit struct {
	Hit
	Ref   uint64
	Layer Layer
}

// Raycast 在 bodies 中查找射线 (0, maxDist] 内的最近命中
// 只检测层位于 mask 中的碰撞体
func Raycast(bodies []Body, ray geom.Ray, maxDist float64, mask LayerMask) (RaycastHit, bool) {
	var best RaycastHit
	found := false
	limit := maxDist

	for i := range bodies {
		b := &bodies[i]
		if !mask.Contains(b.Layer) || b.Shape == nil {
			continue
		}
		h, ok := b.Shape.Raycast(ray, b.Center, limit)
		if !ok {
			continue
		}
		best = RaycastHit{Hit: h, Ref: b.Ref, Layer: b.Layer}
		limit = h.Distance
		found = true
	}

	return best, found
}
