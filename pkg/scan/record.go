// Package scan 实现扫描点的数据模型、扫描图案生成与有界实例缓冲区
package scan

import "github.com/decker502/scanfx/pkg/geom"

// Color 线性 RGBA 颜色，分量范围 0~1
type Color struct {
	R, G, B, A float32
}

// Record 单个扫描点的放置记录
type Record struct {
	// Transform 扫描点的 TRS 变换矩阵
	Transform geom.Mat4
	// CreatedAt 创建时间戳（秒），可能略晚于实际生成时刻
	CreatedAt float64
	// Color 实例颜色
	Color Color
}

// Expired 判断记录在 now 时刻是否已超过 lifetime
func (r *Record) Expired(now, lifetime float64) bool {
	return now-r.CreatedAt > lifetime
}
