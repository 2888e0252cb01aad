package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSource 基于 ebiten 的输入源
//
// 键位：
//   - 鼠标左键 / 单指触摸：面扫描
//   - 鼠标右键 / 双指触摸：线扫描
//   - 滚轮：调整面片尺寸
//   - R：切换线扫描方向
//   - WASD / Space / C：移动，方向键：转向
//   - B：生成小球，X：销毁准星处的小球
//   - Delete：清空扫描点，M：静音，-/=：音量
//   - P：暂停，H：HUD
type EbitenSource struct{}

// NewEbitenSource 创建 ebiten 输入源
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Poll 实现 Source
func (s *EbitenSource) Poll() Snapshot {
	_, wheelY := ebiten.Wheel()
	touches := len(ebiten.AppendTouchIDs(nil))
	volumeDown := inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract)
	volumeUp := inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd)

	return Snapshot{
		ScrollY:       wheelY,
		ToggleLine:    inpututil.IsKeyJustPressed(ebiten.KeyR),
		PrimaryHeld:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || touches == 1,
		SecondaryHeld: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || touches >= 2,
		SpawnBall:     inpututil.IsKeyJustPressed(ebiten.KeyB),
		DestroyBall:   inpututil.IsKeyJustPressed(ebiten.KeyX),
		ClearScan:     inpututil.IsKeyJustPressed(ebiten.KeyDelete),
		ToggleMute:    inpututil.IsKeyJustPressed(ebiten.KeyM),
		TogglePause:   inpututil.IsKeyJustPressed(ebiten.KeyP),
		ToggleHUD:     inpututil.IsKeyJustPressed(ebiten.KeyH),
		VolumeStep:    axis(volumeDown, volumeUp),
		MoveForward:   axis(ebiten.IsKeyPressed(ebiten.KeyS), ebiten.IsKeyPressed(ebiten.KeyW)),
		MoveRight:     axis(ebiten.IsKeyPressed(ebiten.KeyA), ebiten.IsKeyPressed(ebiten.KeyD)),
		MoveUp:        axis(ebiten.IsKeyPressed(ebiten.KeyC), ebiten.IsKeyPressed(ebiten.KeySpace)),
		LookYaw:       axis(ebiten.IsKeyPressed(ebiten.KeyArrowLeft), ebiten.IsKeyPressed(ebiten.KeyArrowRight)),
		LookPitch:     axis(ebiten.IsKeyPressed(ebiten.KeyArrowDown), ebiten.IsKeyPressed(ebiten.KeyArrowUp)),
	}
}
