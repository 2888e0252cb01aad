package main

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/scanfx/internal/audio"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/scenes"
	"github.com/gdamore/tcell/v2"
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack)
	hudStyle        = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	crosshairStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true)
)

// terminalApp 终端前端：事件协程 + 固定帧率主循环
type terminalApp struct {
	screen       tcell.Screen
	world        *scenes.ScanWorld
	scene        *scenes.ScanScene
	sceneManager *game.SceneManager
	keys         *keyTracker
	cells        *cellBuffer

	frame time.Duration
	fps   float64
}

func newTerminalApp(screen tcell.Screen, world *scenes.ScanWorld, sound *audio.SoundManager, settings *game.SettingsManager, fps int) *terminalApp {
	if fps <= 0 {
		fps = 30
	}
	keys := newKeyTracker(defaultHoldWindow)
	source := &termSource{keys: keys, now: time.Now}

	scene := scenes.NewScanScene(world, source, sound, settings)
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &terminalApp{
		screen:       screen,
		world:        world,
		scene:        scene,
		sceneManager: sceneManager,
		keys:         keys,
		cells:        newCellBuffer(),
		frame:        time.Second / time.Duration(fps),
	}
}

// run 运行主循环直到用户退出
func (t *terminalApp) run() {
	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				t.screen.Sync()
				continue
			}
			if t.keys.HandleEvent(ev, time.Now()) == actQuit {
				log.Printf("[Terminal] quit requested")
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > 0 {
				t.fps = t.fps*0.9 + (1/dt)*0.1
			}

			t.sceneManager.Update(dt)
			t.draw()
		}
	}
}

// shutdown 停止周期任务、保存偏好
func (t *terminalApp) shutdown() bool {
	return t.sceneManager.Shutdown()
}

// draw 把世界渲染到字符网格并刷新终端
func (t *terminalApp) draw() {
	w, h := t.screen.Size()
	projector := t.world.Projector(float64(w), float64(h), cellAspect)

	t.cells.Begin(w, h, projector)
	t.world.DrawScene(t.cells)
	t.world.DrawPoints(t.cells)

	t.screen.Clear()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := t.cells.At(x, y)
			if c.glyph == 0 {
				continue
			}
			r, g, b := c.rgb()
			style := backgroundStyle.Foreground(tcell.NewRGBColor(r, g, b))
			t.screen.SetContent(x, y, c.glyph, nil, style)
		}
	}

	if w > 0 && h > 0 {
		t.screen.SetContent(w/2, h/2, '+', nil, crosshairStyle)
	}

	if t.scene.HUDVisible() {
		lines := append(t.scene.HUDStats(t.fps).Lines(), fmt.Sprintf("Cells: %d instances, %d calls", t.cells.Instances, t.cells.Calls))
		for row, line := range lines {
			drawText(t.screen, 0, row, line, hudStyle)
		}
	}

	t.screen.Show()
}

// drawText 从 (x, y) 开始写一行文本
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
