package scenes

import (
	"strings"
	"testing"

	"github.com/decker502/scanfx/pkg/config"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/input"
	"github.com/decker502/scanfx/pkg/scan"
)

func newTestWorld(t *testing.T, mutate func(cfg *config.Config)) *ScanWorld {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	w, err := NewScanWorld(cfg, nil, 1)
	if err != nil {
		t.Fatalf("NewScanWorld error: %v", err)
	}
	return w
}

func TestScanWorldAreaScanHitsScene(t *testing.T) {
	w := newTestWorld(t, nil)

	ev := w.Step(input.Snapshot{PrimaryHeld: true}, 1.0/60)

	if !ev.Scanning {
		t.Error("Scanning should be reported while primary is held")
	}
	if w.Buffer().Len() != 16 {
		t.Errorf("buffer.Len() = %d, want 16", w.Buffer().Len())
	}
	stats := w.Stats()
	if stats.Rays != 16 || stats.Hits != 16 || stats.Mode != "area" {
		t.Errorf("stats = %+v, want 16 rays/hits in area mode", stats)
	}
}

func TestScanWorldExpirySweep(t *testing.T) {
	w := newTestWorld(t, nil)

	w.Step(input.Snapshot{PrimaryHeld: true}, 0.1)
	if w.Buffer().Len() == 0 {
		t.Fatal("expected scan points after first tick")
	}

	// 记录创建时间最晚为 0.1+5，存活 30 秒
	for w.Now() < 30 {
		w.Step(input.Snapshot{}, 0.1)
	}
	if w.Buffer().Len() == 0 {
		t.Error("points should still be alive at t=30")
	}

	for w.Now() < 35.3 {
		w.Step(input.Snapshot{}, 0.1)
	}
	if w.Buffer().Len() != 0 {
		t.Errorf("buffer.Len() = %d at t=%.2f, want 0", w.Buffer().Len(), w.Now())
	}
}

func TestScanWorldCapacityBound(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.Config) {
		cfg.Scanner.Capacity = 20
	})

	for i := 0; i < 10; i++ {
		w.Step(input.Snapshot{PrimaryHeld: true, ScrollY: 1}, 1.0/60)
		if w.Buffer().Len() > 20 {
			t.Fatalf("tick %d: buffer.Len() = %d exceeds capacity", i, w.Buffer().Len())
		}
	}
}

func TestScanWorldClear(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Step(input.Snapshot{PrimaryHeld: true}, 1.0/60)

	ev := w.Step(input.Snapshot{ClearScan: true}, 1.0/60)
	if !ev.Cleared || w.Buffer().Len() != 0 {
		t.Errorf("Cleared=%v len=%d, want cleared buffer", ev.Cleared, w.Buffer().Len())
	}
}

func TestScanWorldBallSelfDestruct(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.Config) {
		cfg.Ball.DestroyDelay = config.Range{Min: 12, Max: 12}
	})

	id := w.Balls().Spawn(geom.Vec3{X: 5, Y: 3, Z: -5}, w.Now())

	for w.Now() < 11.85 {
		w.Step(input.Snapshot{}, 0.1)
	}
	if !w.EntityManager().IsAlive(id) {
		t.Fatalf("ball should exist at t=%.2f", w.Now())
	}

	var removed int
	for w.Now() < 12.05 {
		removed += w.Step(input.Snapshot{}, 0.1).BallsRemoved
	}
	if w.EntityManager().IsAlive(id) {
		t.Errorf("ball should be gone at t=%.2f", w.Now())
	}
	if removed != 1 {
		t.Errorf("BallsRemoved = %d, want 1", removed)
	}
}

func TestScanWorldSpawnBallInput(t *testing.T) {
	w := newTestWorld(t, nil)

	ev := w.Step(input.Snapshot{SpawnBall: true}, 1.0/60)
	if ev.BallsSpawned != 1 || w.Balls().Count() != 1 {
		t.Errorf("spawned=%d count=%d, want 1", ev.BallsSpawned, w.Balls().Count())
	}
}

func TestScanWorldDestroyBallUnderCrosshair(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.Config) {
		cfg.Scene.Camera.Pitch = 0
	})

	// 准星正前方的小球
	target := w.Balls().Spawn(geom.Vec3{Y: 1.6, Z: 6}, w.Now())

	ev := w.Step(input.Snapshot{DestroyBall: true}, 1.0/60)
	if ev.BallsRemoved != 1 {
		t.Errorf("BallsRemoved = %d, want 1", ev.BallsRemoved)
	}
	if w.EntityManager().IsAlive(target) {
		t.Error("ball under the crosshair should be reclaimed at end of tick")
	}

	// 准星未对准任何小球时不销毁
	other := w.Balls().Spawn(geom.Vec3{X: 5, Y: 1.6, Z: 6}, w.Now())
	if ev := w.Step(input.Snapshot{DestroyBall: true}, 1.0/60); ev.BallsRemoved != 0 {
		t.Errorf("BallsRemoved = %d, want 0 when aiming at nothing", ev.BallsRemoved)
	}
	if !w.EntityManager().IsAlive(other) {
		t.Error("ball off the crosshair should survive")
	}
}

func TestScanWorldCloseStopsSweep(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Close()

	w.Buffer().Append(scan.Record{CreatedAt: 0})
	for i := 0; i < 400; i++ {
		w.Step(input.Snapshot{}, 0.1)
	}
	if w.Buffer().Len() != 1 {
		t.Errorf("buffer.Len() = %d, want 1 after sweep stopped", w.Buffer().Len())
	}
}

func TestScanWorldPreferences(t *testing.T) {
	cfg := config.DefaultConfig()
	prefs := &game.Settings{PatchSize: 2.5, LineVertical: true}
	w, err := NewScanWorld(cfg, prefs, 1)
	if err != nil {
		t.Fatalf("NewScanWorld error: %v", err)
	}

	stats := w.Stats()
	if stats.PatchWidth != 2.5 || !stats.LineVertical {
		t.Errorf("stats = %+v, want restored preferences", stats)
	}

	w.Step(input.Snapshot{ScrollY: -10, ToggleLine: true}, 1.0/60)

	sm := game.NewSettingsManager(nil)
	w.StorePreferences(sm)
	if sm.GetSettings().PatchSize != 1.5 || sm.GetSettings().LineVertical {
		t.Errorf("stored settings = %+v, want patch 1.5 horizontal", sm.GetSettings())
	}
}

func TestNewScanWorldRejectsUnknownLayer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.EnvironmentLayer = "lava"

	_, err := NewScanWorld(cfg, nil, 1)
	if err == nil || !strings.Contains(err.Error(), "lava") {
		t.Errorf("error = %v, want unknown layer error", err)
	}
}

func TestScanWorldEntityLayout(t *testing.T) {
	w := newTestWorld(t, nil)

	// 地面 + 盒子 + 相机
	want := 1 + len(config.DefaultConfig().Scene.Boxes) + 1
	if got := w.EntityManager().EntityCount(); got != want {
		t.Errorf("EntityCount() = %d, want %d", got, want)
	}
}

func TestScanWorldPauseFreezesSystems(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.Config) {
		cfg.Ball.DestroyDelay = config.Range{Min: 0.5, Max: 0.5}
	})
	id := w.Balls().Spawn(geom.Vec3{X: 5, Y: 3, Z: -5}, w.Now())

	ev := w.Step(input.Snapshot{TogglePause: true}, 0.1)
	if !ev.Paused || !w.Paused() {
		t.Fatalf("Paused event=%v world=%v, want paused", ev.Paused, w.Paused())
	}

	for i := 0; i < 20; i++ {
		ev = w.Step(input.Snapshot{PrimaryHeld: true, SpawnBall: true}, 0.1)
		if ev.BallsSpawned != 0 || ev.Scanning {
			t.Fatalf("paused step produced events: %+v", ev)
		}
	}
	if w.Now() != 0 || w.Buffer().Len() != 0 || !w.EntityManager().IsAlive(id) {
		t.Errorf("Now=%v len=%d alive=%v, want frozen world",
			w.Now(), w.Buffer().Len(), w.EntityManager().IsAlive(id))
	}
	if !w.Stats().Paused {
		t.Error("Stats should report pause")
	}

	// 恢复后计时继续，小球按游戏时间到期
	w.Step(input.Snapshot{TogglePause: true}, 0.1)
	for w.Now() < 0.6 {
		w.Step(input.Snapshot{}, 0.1)
	}
	if w.EntityManager().IsAlive(id) {
		t.Error("ball should expire once time resumes")
	}
}
