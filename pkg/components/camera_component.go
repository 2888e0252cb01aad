package components

import "github.com/decker502/scanfx/pkg/geom"

// CameraComponent 第一人称相机
// 位置存放在同一实体的 TransformComponent 中
type CameraComponent struct {
	// Yaw 偏航角（弧度），0 表示朝向 +Z
	Yaw float64

	// Pitch 俯仰角（弧度），正值向上看
	Pitch float64

	// FOV 垂直视场角（弧度）
	FOV float64

	// Near 近裁剪面距离
	Near float64

	// MoveSpeed 移动速度（单位/秒）
	MoveSpeed float64

	// LookSpeed 转向速度（弧度/秒）
	LookSpeed float64
}

// Basis 返回相机当前朝向的正交基
func (c *CameraComponent) Basis() geom.Basis {
	return geom.BasisFromYawPitch(c.Yaw, c.Pitch)
}
