// Package input 定义每帧的输入快照，并提供 ebiten 输入源实现
//
// 系统只读取 Snapshot，不直接调用输入 API，便于用构造的快照做单元测试，
// 也便于终端前端提供自己的输入源。
package input

// Snapshot 一帧的输入状态
type Snapshot struct {
	// ScrollY 本帧滚轮增量（向上为正）
	ScrollY float64

	// ToggleLine 切换线扫描方向的按键是否在本帧刚按下（边沿触发）
	ToggleLine bool

	// PrimaryHeld 主动作（面扫描）是否按住
	PrimaryHeld bool

	// SecondaryHeld 副动作（线扫描）是否按住
	SecondaryHeld bool

	// SpawnBall 本帧是否请求生成小球（边沿触发）
	SpawnBall bool

	// DestroyBall 本帧是否请求销毁准星处的小球（边沿触发）
	DestroyBall bool

	// ClearScan 本帧是否请求清空扫描点（边沿触发）
	ClearScan bool

	// ToggleMute 本帧是否切换静音（边沿触发）
	ToggleMute bool

	// TogglePause 本帧是否切换暂停（边沿触发）
	TogglePause bool

	// ToggleHUD 本帧是否切换 HUD 显示（边沿触发）
	ToggleHUD bool

	// VolumeStep 本帧音量调节的步数，正数调大
	VolumeStep float64

	// MoveForward/MoveRight/MoveUp 移动轴，取值 -1~1
	MoveForward float64
	MoveRight   float64
	MoveUp      float64

	// LookYaw/LookPitch 转向轴，取值 -1~1
	LookYaw   float64
	LookPitch float64
}

// Source 输入源
type Source interface {
	// Poll 采集当前帧的输入快照，每帧调用一次
	Poll() Snapshot
}

// axis 将一对按键状态合成为 -1/0/1 的轴值
func axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v -= 1
	}
	if positive {
		v += 1
	}
	return v
}
