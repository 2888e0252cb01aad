package components

// RGB 线性颜色，分量范围 0~1
type RGB struct {
	R, G, B float64
}

// BallComponent 自毁小球
// 创建时随机选择颜色和自毁延迟，实际销毁由 LifetimeComponent 驱动
type BallComponent struct {
	Tint         RGB
	Radius       float64
	DestroyDelay float64 // 自毁延迟（秒）
}
