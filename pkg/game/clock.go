package game

import "math"

// MaxFrameStep 单帧最大步长（秒），窗口拖动或断点恢复后避免时间跳变
const MaxFrameStep = 0.1

// Clock 显式的游戏时钟
//
// 所有与时间相关的操作都接收 Clock.Now() 而不是读取系统时间，
// 便于测试中精确控制时间。
type Clock struct {
	now    float64
	paused bool
	frames uint64
}

// NewClock 创建从 0 开始的时钟
func NewClock() *Clock {
	return &Clock{}
}

// Tick 推进一帧并返回实际推进的时长
// 负值和 NaN 按 0 处理，超过 MaxFrameStep 的步长会被截断
func (c *Clock) Tick(dt float64) float64 {
	c.frames++
	if c.paused || dt <= 0 || math.IsNaN(dt) {
		return 0
	}
	if dt > MaxFrameStep {
		dt = MaxFrameStep
	}
	c.now += dt
	return dt
}

// Now 返回当前游戏时间（秒）
func (c *Clock) Now() float64 {
	return c.now
}

// Frames 返回已推进的帧数（含暂停帧）
func (c *Clock) Frames() uint64 {
	return c.frames
}

// SetPaused 暂停/恢复时钟
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

// IsPaused 是否暂停
func (c *Clock) IsPaused() bool {
	return c.paused
}
