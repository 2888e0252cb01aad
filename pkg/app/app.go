// Package app 提供扫描演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"time"

	sfxaudio "github.com/decker502/scanfx/internal/audio"
	"github.com/decker502/scanfx/pkg/embedded"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/input"
	"github.com/decker502/scanfx/pkg/scenes"
	"github.com/decker502/scanfx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// WindowWidth 窗口模式下的默认宽度
	WindowWidth = 1280
	// WindowHeight 窗口模式下的默认高度
	WindowHeight = 720
	// AppName gdata 存储使用的应用名
	AppName = "scanfx"
	// TPS 逻辑帧率
	TPS = 60
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用嵌入的 data/scanner.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Mute 启动时静音（不修改已保存的偏好）
	Mute bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	shutdown                 bool
}

// NewApp 创建并初始化应用
//
// 未指定 ConfigPath 时，调用此函数前应先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	scannerCfg, err := embedded.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("扫描器配置加载失败: %w", err)
	}
	log.Printf("[Config] capacity=%d lifetime=%.1fs sweep=%.3fs",
		scannerCfg.Scanner.Capacity, scannerCfg.Scanner.LifetimeSeconds, scannerCfg.Scanner.SweepIntervalSeconds)

	settings := game.OpenSettingsManager(AppName)
	prefs := settings.GetSettings()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world, err := scenes.NewScanWorld(scannerCfg, prefs, seed)
	if err != nil {
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}

	// 初始化音频上下文，失败时静音运行
	audioContext := audio.NewContext(int(sfxaudio.SampleRate))
	sound := sfxaudio.NewSoundManager(prefs.SoundVolume, prefs.SoundEnabled && !cfg.Mute)
	if err := sound.Start(&sfxaudio.EbitenSink{Context: audioContext}); err != nil {
		log.Printf("[App] Warning: audio unavailable: %v", err)
		sound = nil
	} else {
		log.Printf("[App] SoundManager initialized (volume=%.2f, muted=%v)", prefs.SoundVolume, sound.Muted())
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewScanScene(world, input.NewEbitenSource(), sound, settings))

	if prefs.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !utils.IsMobile() && a.handleDesktopKeys() {
		a.Shutdown()
		return ebiten.Termination
	}

	a.sceneManager.Update(1.0 / TPS)
	return nil
}

// handleDesktopKeys 处理桌面端快捷键：F11 切换全屏，Esc 退出
// 返回 true 表示请求退出
func (a *App) handleDesktopKeys() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口，投影按实际宽高比计算
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Shutdown 停止周期任务并保存偏好，重复调用安全
func (a *App) Shutdown() {
	if a.shutdown {
		return
	}
	a.shutdown = true
	if !a.sceneManager.Shutdown() {
		log.Printf("[App] Warning: failed to save preferences on exit")
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
