package components

import "github.com/decker502/scanfx/pkg/physics"

// ColliderComponent 定义实体的碰撞形状与所在碰撞层
// 形状以 TransformComponent.Position 为中心
//
// Static 为 true 的碰撞体（地面、墙体）不参与物理积分，只作为碰撞和射线目标
type ColliderComponent struct {
	Shape  physics.Shape
	Layer  physics.Layer
	Static bool
}
