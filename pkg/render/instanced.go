// Package render 定义实例化绘制契约，并提供基于 ebiten 的实现
package render

import (
	"image/color"

	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/scan"
)

// Mesh 被实例化绘制的网格
// 扫描点使用面向相机的四边形，Vertices 的 X/Y 为局部偏移
type Mesh struct {
	Name     string
	Vertices []geom.Vec3
	Indices  []uint16
}

// Material 实例化绘制使用的材质
type Material struct {
	Name string
	// Additive 为 true 时使用加法混合
	Additive bool
	// MinPixelSize 实例在屏幕上的最小尺寸（像素），避免远处的点消失
	MinPixelSize float32
}

// InstancedDrawer 实例化绘制接口
//
// 每次调用对应一次批量绘制：count 个实例共享 mesh 和 material，
// 每个实例有自己的变换矩阵和颜色覆盖。
// transforms/colors 只在调用期间有效，实现不得保留。
type InstancedDrawer interface {
	DrawMeshInstanced(mesh *Mesh, material *Material, transforms []geom.Mat4, colors []scan.Color, count int)
}

// QuadMesh 返回以原点为中心、边长为 1 的四边形网格
func QuadMesh() *Mesh {
	return &Mesh{
		Name: "scan_point_quad",
		Vertices: []geom.Vec3{
			{X: -0.5, Y: -0.5},
			{X: 0.5, Y: -0.5},
			{X: -0.5, Y: 0.5},
			{X: 0.5, Y: 0.5},
		},
		Indices: []uint16{0, 1, 2, 1, 3, 2},
	}
}

// ScanPointMaterial 扫描点默认材质
func ScanPointMaterial() *Material {
	return &Material{
		Name:         "scan_point",
		Additive:     true,
		MinPixelSize: 1.5,
	}
}

// Canvas 场景线框绘制接口
// 像素前端和终端前端各自实现
type Canvas interface {
	Line(a, b geom.Vec3, c color.RGBA)
	Sphere(center geom.Vec3, radius float64, c color.RGBA)
}
