package geom

import "math"

// Basis 相机的正交基向量
type Basis struct {
	Forward Vec3
	Right   Vec3
	Up      Vec3
}

// BasisFromYawPitch 由偏航角和俯仰角（弧度）计算相机基向量
// yaw=0, pitch=0 时 Forward=+Z, Right=+X, Up=+Y
func BasisFromYawPitch(yaw, pitch float64) Basis {
	cp := math.Cos(pitch)
	forward := Vec3{
		X: cp * math.Sin(yaw),
		Y: math.Sin(pitch),
		Z: cp * math.Cos(yaw),
	}
	right := Vec3{X: math.Cos(yaw), Y: 0, Z: -math.Sin(yaw)}
	up := forward.Cross(right)
	return Basis{
		Forward: forward.Normalize(),
		Right:   right.Normalize(),
		Up:      up.Normalize(),
	}
}
