package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/scanfx/pkg/app"
	"github.com/decker502/scanfx/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "外部配置文件路径（默认使用嵌入的 data/scanner.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	mute       = flag.Bool("mute", false, "启动时静音")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		Mute:       *mute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("ScanFX - 激光雷达扫描演示")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(app.TPS)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}

	// RunGame 因错误以外的原因返回时也保证保存
	gameApp.Shutdown()
}
