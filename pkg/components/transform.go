package components

import "github.com/decker502/scanfx/pkg/geom"

// TransformComponent 存储实体在世界空间中的位置
// 扫描场景中的物体都不旋转，旋转只存在于相机组件
type TransformComponent struct {
	Position geom.Vec3
}

// VelocityComponent 存储实体的线速度（单位/秒）
type VelocityComponent struct {
	Linear geom.Vec3
}
