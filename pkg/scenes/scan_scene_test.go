package scenes

import (
	"math"
	"testing"

	"github.com/decker502/scanfx/internal/audio"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/input"
)

// scriptedSource 依次返回预设的快照，用完后返回空快照
type scriptedSource struct {
	frames []input.Snapshot
}

func (s *scriptedSource) Poll() input.Snapshot {
	if len(s.frames) == 0 {
		return input.Snapshot{}
	}
	in := s.frames[0]
	s.frames = s.frames[1:]
	return in
}

func newTestScene(t *testing.T, frames ...input.Snapshot) (*ScanScene, *audio.SoundManager, *game.SettingsManager) {
	t.Helper()
	sound := audio.NewSoundManager(0.6, true)
	settings := game.NewSettingsManager(nil)
	scene := NewScanScene(newTestWorld(t, nil), &scriptedSource{frames: frames}, sound, settings)
	return scene, sound, settings
}

func TestScanSceneHUDToggle(t *testing.T) {
	scene, _, _ := newTestScene(t, input.Snapshot{ToggleHUD: true}, input.Snapshot{}, input.Snapshot{ToggleHUD: true})

	if !scene.HUDVisible() {
		t.Fatal("HUD should start visible")
	}
	scene.Update(1.0 / 60)
	if scene.HUDVisible() {
		t.Error("HUD should hide after toggle")
	}
	scene.Update(1.0 / 60)
	if scene.HUDVisible() {
		t.Error("HUD should stay hidden without input")
	}
	scene.Update(1.0 / 60)
	if !scene.HUDVisible() {
		t.Error("HUD should show after second toggle")
	}
}

func TestScanSceneVolumePersists(t *testing.T) {
	scene, sound, settings := newTestScene(t,
		input.Snapshot{VolumeStep: 1},
		input.Snapshot{VolumeStep: -1},
		input.Snapshot{VolumeStep: -1},
	)

	tests := []struct {
		name string
		want float64
	}{
		{"up", 0.7},
		{"down", 0.6},
		{"down again", 0.5},
	}
	for _, tt := range tests {
		scene.Update(1.0 / 60)
		if got := sound.Volume(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: Volume() = %v, want %v", tt.name, got, tt.want)
		}
		if got := settings.GetSettings().SoundVolume; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: stored SoundVolume = %v, want %v", tt.name, got, tt.want)
		}
	}

	stats := scene.HUDStats(30)
	if stats.FPS != 30 || math.Abs(stats.Volume-0.5) > 1e-9 || stats.Muted {
		t.Errorf("HUDStats = %+v, want fps 30, volume 0.5, unmuted", stats)
	}
}

func TestScanSceneVolumeClampsAtZero(t *testing.T) {
	frames := make([]input.Snapshot, 8)
	for i := range frames {
		frames[i] = input.Snapshot{VolumeStep: -1}
	}
	scene, sound, settings := newTestScene(t, frames...)

	for range frames {
		scene.Update(1.0 / 60)
	}
	if sound.Volume() != 0 || !sound.Muted() {
		t.Errorf("Volume()=%v Muted()=%v, want silent at zero", sound.Volume(), sound.Muted())
	}
	if settings.GetSettings().SoundVolume != 0 {
		t.Errorf("stored SoundVolume = %v, want 0", settings.GetSettings().SoundVolume)
	}
}

func TestScanSceneMuteStoresPreference(t *testing.T) {
	scene, sound, settings := newTestScene(t, input.Snapshot{ToggleMute: true})

	scene.Update(1.0 / 60)
	if !sound.Muted() {
		t.Error("ToggleMute should mute the sound manager")
	}
	if settings.GetSettings().SoundEnabled {
		t.Error("SoundEnabled should be stored as false")
	}
}

func TestScanScenePause(t *testing.T) {
	scene, _, _ := newTestScene(t,
		input.Snapshot{},
		input.Snapshot{TogglePause: true, PrimaryHeld: true},
		input.Snapshot{PrimaryHeld: true},
		input.Snapshot{TogglePause: true},
	)
	world := scene.World()

	scene.Update(0.05)
	before := world.Now()

	scene.Update(0.05)
	scene.Update(0.05)
	if world.Now() != before {
		t.Errorf("Now() = %v, want %v while paused", world.Now(), before)
	}
	if world.Buffer().Len() != 0 {
		t.Errorf("buffer.Len() = %d, want 0 while paused", world.Buffer().Len())
	}
	if !scene.HUDStats(0).Paused {
		t.Error("HUD stats should report pause")
	}

	scene.Update(0.05)
	if world.Paused() || world.Now() <= before {
		t.Errorf("Paused=%v Now=%v, want time running after resume", world.Paused(), world.Now())
	}
}

func TestScanSceneWithoutSound(t *testing.T) {
	scene := NewScanScene(newTestWorld(t, nil), &scriptedSource{frames: []input.Snapshot{{ToggleMute: true, VolumeStep: 1}}}, nil, nil)
	scene.Update(1.0 / 60)
	if stats := scene.HUDStats(0); !stats.Muted {
		t.Error("scene without sound should report muted")
	}
}
