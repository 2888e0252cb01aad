package geom

// Ray 射线：Origin + t*Direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay 创建射线，方向会被归一化，因此 t 即为世界距离
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At 返回射线上参数 t 处的点
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
