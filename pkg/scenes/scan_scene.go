package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/scanfx/internal/audio"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/input"
	"github.com/decker502/scanfx/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// volumeStepSize 每次音量调节的幅度
const volumeStepSize = 0.1

var (
	backgroundColor = color.RGBA{R: 8, G: 10, B: 16, A: 255}
	crosshairColor  = color.RGBA{R: 220, G: 220, B: 220, A: 160}
)

// ScanScene ebiten 前端的扫描场景
type ScanScene struct {
	world    *ScanWorld
	source   input.Source
	drawer   *render.EbitenInstancedDrawer
	canvas   render.EbitenCanvas
	sound    *audio.SoundManager
	settings *game.SettingsManager

	showHUD bool
	closed  bool
}

// NewScanScene 创建扫描场景
//
// 参数:
//   - world: 世界状态
//   - source: 输入源
//   - sound: 音效管理器，可为 nil（静音运行）
//   - settings: 设置管理器，可为 nil（不保存偏好）
func NewScanScene(world *ScanWorld, source input.Source, sound *audio.SoundManager, settings *game.SettingsManager) *ScanScene {
	return &ScanScene{
		world:    world,
		source:   source,
		drawer:   render.NewEbitenInstancedDrawer(),
		canvas:   render.EbitenCanvas{LineWidth: 1},
		sound:    sound,
		settings: settings,
		showHUD:  true,
	}
}

// Update 实现 game.Scene
func (s *ScanScene) Update(deltaTime float64) {
	if s.closed {
		return
	}

	in := s.source.Poll()
	if in.ToggleHUD {
		s.showHUD = !s.showHUD
	}
	s.applySoundInput(in)

	ev := s.world.Step(in, deltaTime)
	s.react(ev)
}

// applySoundInput 处理静音和音量按键，并同步到设置
func (s *ScanScene) applySoundInput(in input.Snapshot) {
	if s.sound == nil {
		return
	}
	if in.ToggleMute {
		muted := s.sound.ToggleMute()
		if s.settings != nil {
			s.settings.SetSoundEnabled(!muted)
		}
	}
	if in.VolumeStep != 0 {
		s.sound.SetVolume(s.sound.Volume() + in.VolumeStep*volumeStepSize)
		if s.settings != nil {
			s.settings.SetSoundVolume(s.sound.Volume())
		}
		log.Printf("[ScanScene] Volume set to %.0f%%", s.sound.Volume()*100)
	}
}

// react 根据本帧事件播放音效
func (s *ScanScene) react(ev StepEvents) {
	if s.sound == nil {
		return
	}
	s.sound.SetScanning(ev.Scanning)
	for i := 0; i < ev.BallsRemoved; i++ {
		s.sound.PlayPop()
	}
	if ev.Cleared {
		s.sound.PlayClick()
	}
}

// Draw 实现 game.Scene
func (s *ScanScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	projector := s.world.Projector(w, h, 1)

	s.canvas.Target = screen
	s.canvas.Projector = projector
	s.world.DrawScene(&s.canvas)

	// 全部扫描点在一次实例化绘制中提交
	s.drawer.Begin(screen, projector)
	s.world.DrawPoints(s.drawer)

	cx, cy := float32(w/2), float32(h/2)
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, crosshairColor, false)

	if s.showHUD {
		ebitenutil.DebugPrint(screen, s.HUDStats(ebiten.ActualFPS()).String())
	}
}

// HUDVisible HUD 是否显示
func (s *ScanScene) HUDVisible() bool {
	return s.showHUD
}

// HUDStats 返回填好帧率和音效状态的 HUD 统计
func (s *ScanScene) HUDStats(fps float64) game.Stats {
	stats := s.world.Stats()
	stats.FPS = fps
	if s.sound != nil {
		stats.Muted = s.sound.Muted()
		stats.Volume = s.sound.Volume()
	} else {
		stats.Muted = true
	}
	return stats
}

// SaveOnExit 实现 game.Saveable：停止周期任务、保存偏好、停止音效
func (s *ScanScene) SaveOnExit() bool {
	if s.closed {
		return true
	}
	s.closed = true

	s.world.Close()
	if s.sound != nil {
		s.sound.Cleanup()
	}

	if s.settings == nil {
		return true
	}
	s.world.StorePreferences(s.settings)
	if err := s.settings.Save(); err != nil {
		return false
	}
	return true
}

// World 返回世界状态
func (s *ScanScene) World() *ScanWorld {
	return s.world
}
