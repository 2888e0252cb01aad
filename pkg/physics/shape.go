package physics

import (
	"math"

	"github.com/decker502/scanfx/pkg/geom"
)

// parallelEpsilon 射线与平面近似平行的阈值
const parallelEpsilon = 1e-8

// Hit 射线命中信息
type Hit struct {
	Distance float64
	Point    geom.Vec3
	Normal   geom.Vec3
}

// Shape 可被射线检测的形状
// 形状在局部空间定义，center 为所属实体的世界位置
type Shape interface {
	// Raycast 检测射线在 (0, maxDist] 内的最近交点
	Raycast(ray geom.Ray, center geom.Vec3, maxDist float64) (Hit, bool)
}

// Sphere 球体
type Sphere struct {
	Radius float64
}

// Raycast 实现 Shape
func (s Sphere) Raycast(ray geom.Ray, center geom.Vec3, maxDist float64) (Hit, bool) {
	oc := ray.Origin.Sub(center)

	// 二次方程 at² + 2bt + c = 0（方向已归一化时 a=1）
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return Hit{}, false
	}
	sqrtD := math.Sqrt(disc)

	// 只取近交点，起点在球内时不算命中
	root := (-halfB - sqrtD) / a
	if root <= 0 || root > maxDist {
		return Hit{}, false
	}

	p := ray.At(root)
	return Hit{
		Distance: root,
		Point:    p,
		Normal:   p.Sub(center).Scale(1 / s.Radius),
	}, true
}

// Plane 无限平面，经过 center 且法线为 Normal
type Plane struct {
	Normal geom.Vec3
}

// Raycast 实现 Shape
func (p Plane) Raycast(ray geom.Ray, center geom.Vec3, maxDist float64) (Hit, bool) {
	n := p.Normal.Normalize()
	denom := ray.Direction.Dot(n)
	if math.Abs(denom) < parallelEpsilon {
		return Hit{}, false
	}

	t := center.Sub(ray.Origin).Dot(n) / denom
	if t <= 0 || t > maxDist {
		return Hit{}, false
	}

	normal := n
	if denom > 0 {
		normal = n.Neg()
	}
	return Hit{Distance: t, Point: ray.At(t), Normal: normal}, true
}

// Box 轴对齐盒，HalfExtents 为半尺寸
type Box struct {
	HalfExtents geom.Vec3
}

// Raycast 实现 Shape，使用 slab 算法
func (b Box) Raycast(ray geom.Ray, center geom.Vec3, maxDist float64) (Hit, bool) {
	lo := center.Sub(b.HalfExtents)
	hi := center.Add(b.HalfExtents)

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	mins := [3]float64{lo.X, lo.Y, lo.Z}
	maxs := [3]float64{hi.X, hi.Y, hi.Z}

	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis := -1
	nearSign := 0.0

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < parallelEpsilon {
			if origin[axis] < mins[axis] || origin[axis] > maxs[axis] {
				return Hit{}, false
			}
			continue
		}

		inv := 1 / dir[axis]
		t1 := (mins[axis] - origin[axis]) * inv
		t2 := (maxs[axis] - origin[axis]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}

		if t1 > tNear {
			tNear = t1
			nearAxis = axis
			nearSign = sign
		}
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return Hit{}, false
		}
	}

	// 起点在盒内时不算命中
	if tNear <= 0 || tNear > maxDist || nearAxis < 0 {
		return Hit{}, false
	}

	var normal geom.Vec3
	switch nearAxis {
	case 0:
		normal.X = nearSign
	case 1:
		normal.Y = nearSign
	case 2:
		normal.Z = nearSign
	}
	return Hit{Distance: tNear, Point: ray.At(tNear), Normal: normal}, true
}
