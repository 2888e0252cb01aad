package physics

import (
	"math"

	"github.com/decker502/scanfx/pkg/geom"
)

// Contact 球体与另一形状的穿透信息
// Normal 指向将球推离对方的方向，Depth 为穿透深度
type Contact struct {
	Normal geom.Vec3
	Depth  float64
}

// SphereContact 检测以 center 为中心、半径为 radius 的球与 other 的重叠
// 不支持的形状返回 false
func SphereContact(center geom.Vec3, radius float64, other Shape, otherCenter geom.Vec3) (Contact, bool) {
	switch o := other.(type) {
	case Sphere:
		return sphereSphere(center, radius, otherCenter, o.Radius)
	case Plane:
		return spherePlane(center, radius, o, otherCenter)
	case Box:
		return sphereBox(center, radius, o, otherCenter)
	}
	return Contact{}, false
}

func sphereSphere(a geom.Vec3, ra float64, b geom.Vec3, rb float64) (Contact, bool) {
	d := a.Sub(b)
	dist := d.Length()
	depth := ra + rb - dist
	if depth <= 0 {
		return Contact{}, false
	}
	normal := geom.Up
	if dist > 1e-9 {
		normal = d.Scale(1 / dist)
	}
	return Contact{Normal: normal, Depth: depth}, true
}

func spherePlane(c geom.Vec3, r float64, p Plane, origin geom.Vec3) (Contact, bool) {
	n := p.Normal.Normalize()
	dist := c.Sub(origin).Dot(n)
	if dist >= r {
		return Contact{}, false
	}
	return Contact{Normal: n, Depth: r - dist}, true
}

func sphereBox(c geom.Vec3, r float64, b Box, origin geom.Vec3) (Contact, bool) {
	lo := origin.Sub(b.HalfExtents)
	hi := origin.Add(b.HalfExtents)
	closest := geom.Vec3{
		X: geom.Clamp(c.X, lo.X, hi.X),
		Y: geom.Clamp(c.Y, lo.Y, hi.Y),
		Z: geom.Clamp(c.Z, lo.Z, hi.Z),
	}

	d := c.Sub(closest)
	dist := d.Length()
	if dist > 1e-9 {
		if dist >= r {
			return Contact{}, false
		}
		return Contact{Normal: d.Scale(1 / dist), Depth: r - dist}, true
	}

	// 球心在盒内，沿穿透最浅的面推出
	local := c.Sub(origin)
	pen := [3]float64{
		b.HalfExtents.X - math.Abs(local.X),
		b.HalfExtents.Y - math.Abs(local.Y),
		b.HalfExtents.Z - math.Abs(local.Z),
	}
	axis := 0
	for i := 1; i < 3; i++ {
		if pen[i] < pen[axis] {
			axis = i
		}
	}

	var normal geom.Vec3
	switch axis {
	case 0:
		normal.X = math.Copysign(1, local.X)
	case 1:
		normal.Y = math.Copysign(1, local.Y)
	default:
		normal.Z = math.Copysign(1, local.Z)
	}
	return Contact{Normal: normal, Depth: pen[axis] + r}, true
}
