package components

// LifetimeComponent 管理实体的生命周期
// 用于在指定时间后自动销毁实体（如自毁小球）
//
// 时间为显式传入的游戏时钟（秒），不依赖全局时间
type LifetimeComponent struct {
	SpawnedAt   float64 // 创建时间(秒)
	MaxLifetime float64 // 最大生命周期(秒)
	IsExpired   bool    // 是否已过期
}

// ExpiresAt 返回过期时间点
func (l *LifetimeComponent) ExpiresAt() float64 {
	return l.SpawnedAt + l.MaxLifetime
}
