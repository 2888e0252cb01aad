// scanterm 在终端中运行扫描演示
//
// 用法:
//
//	go run ./cmd/scanterm [--config data/scanner.yaml] [--seed 42] [--log scanterm.log] [--mute]
//
// 终端无法上报按键释放，按住类动作依赖键盘自动重复。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/scanfx/internal/audio"
	"github.com/decker502/scanfx/pkg/config"
	"github.com/decker502/scanfx/pkg/embedded"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/scenes"
	"github.com/gdamore/tcell/v2"
)

var (
	configPath = flag.String("config", "", "配置文件路径（默认 data/scanner.yaml，不存在时使用内置默认值）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	logPath    = flag.String("log", "", "日志文件路径（终端界面占用标准输出，默认不输出日志）")
	mute       = flag.Bool("mute", false, "启动时静音")
	fps        = flag.Int("fps", 30, "目标帧率")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scanterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := embedded.LoadConfig(resolveConfigPath(*configPath))
	if err != nil {
		return fmt.Errorf("扫描器配置加载失败: %w", err)
	}

	settings := game.OpenSettingsManager("scanfx")
	prefs := settings.GetSettings()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	world, err := scenes.NewScanWorld(cfg, prefs, s)
	if err != nil {
		return fmt.Errorf("场景初始化失败: %w", err)
	}

	sound := audio.NewSoundManager(prefs.SoundVolume, prefs.SoundEnabled && !*mute)
	if err := sound.Start(audio.SpeakerSink{BufferDuration: 100 * time.Millisecond}); err != nil {
		log.Printf("[Terminal] Warning: audio unavailable: %v", err)
		sound = nil
	} else {
		defer audio.CloseSpeaker()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	app := newTerminalApp(screen, world, sound, settings, *fps)
	app.run()

	screen.Fini()
	if !app.shutdown() {
		return fmt.Errorf("failed to save preferences")
	}
	return nil
}

// resolveConfigPath 未指定路径时优先使用工作目录下的 data/scanner.yaml
func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(config.DefaultConfigPath); err == nil {
		return config.DefaultConfigPath
	}
	return ""
}

// setupLogging 日志写入文件，未指定时丢弃
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}
