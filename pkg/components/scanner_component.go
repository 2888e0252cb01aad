package components

// ScanMode 当前帧的扫描模式
type ScanMode int

const (
	// ScanModeIdle 未扫描
	ScanModeIdle ScanMode = iota
	// ScanModeArea 面扫描（主按键按住）
	ScanModeArea
	// ScanModeLine 线扫描（副按键按住）
	ScanModeLine
)

// String 返回模式名称（用于 HUD 和日志）
func (m ScanMode) String() string {
	switch m {
	case ScanModeArea:
		return "area"
	case ScanModeLine:
		return "line"
	default:
		return "idle"
	}
}

// ScannerComponent 扫描器状态
//
// 面片尺寸由滚轮调整；LineVertical 由切换键翻转，
// 为 true 时线扫描沿相机 Up 方向，否则沿 Right 方向。
type ScannerComponent struct {
	PlaneWidth   float64
	PlaneHeight  float64
	LineVertical bool

	// 以下字段只读，由扫描系统每帧刷新
	Mode         ScanMode
	LastRayCount int
	LastHitCount int
}
