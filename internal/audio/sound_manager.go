package audio

import (
	"log"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sink 音频输出后端
// Start 接收混音后的总输出流，之后持续从中拉取采样
type Sink interface {
	Start(s beep.Streamer) error
}

// SoundManager 管理扫描器的全部音效
//
// 所有声音先进入同一个 beep.Mixer，再经过总音量控制交给 Sink。
// Sink 在自己的 goroutine 中拉取采样，因此混音器的读写都在 mu 保护下进行。
type SoundManager struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	master  *effects.Volume
	hum     *beep.Ctrl
	started bool
	volume  float64
	muted   bool
}

// NewSoundManager 创建音效管理器
//
// 参数:
//   - volume: 总音量 0.0 ~ 1.0
//   - enabled: 是否启用音效（false 时静音）
func NewSoundManager(volume float64, enabled bool) *SoundManager {
	mixer := &beep.Mixer{}
	sm := &SoundManager{
		mixer:  mixer,
		master: withVolume(mixer, volume),
		volume: math.Max(0, math.Min(1, volume)),
		muted:  !enabled,
	}
	sm.apply()
	return sm
}

// Start 将总输出交给 sink 并开始播放
func (sm *SoundManager) Start(sink Sink) error {
	sm.mu.Lock()
	if sm.started {
		sm.mu.Unlock()
		return nil
	}
	sm.mu.Unlock()

	if err := sink.Start(&lockedStreamer{mu: &sm.mu, s: sm.master}); err != nil {
		return err
	}

	sm.mu.Lock()
	sm.started = true
	sm.mu.Unlock()
	log.Printf("[SoundManager] Audio started")
	return nil
}

// SetScanning 开始或停止扫描嗡鸣
func (sm *SoundManager) SetScanning(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.started {
		return
	}
	if sm.hum == nil {
		if !on {
			return
		}
		sm.hum = &beep.Ctrl{Streamer: NewHum(SampleRate)}
		sm.mixer.Add(sm.hum)
		return
	}
	sm.hum.Paused = !on
}

// PlayPop 播放小球销毁提示音
func (sm *SoundManager) PlayPop() {
	sm.play(NewPop(SampleRate))
}

// PlayClick 播放清空提示音
func (sm *SoundManager) PlayClick() {
	click, err := NewClick(SampleRate)
	if err != nil {
		log.Printf("[SoundManager] Warning: failed to create click: %v", err)
		return
	}
	sm.play(click)
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.started || sm.master.Silent {
		return
	}
	sm.mixer.Add(s)
}

// ToggleMute 切换静音，返回切换后的状态
// 音量为 0 时始终视为静音
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	sm.apply()
	return sm.master.Silent
}

// Muted 是否静音
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.master.Silent
}

// SetVolume 设置总音量 0.0 ~ 1.0，不改变用户的静音开关
func (sm *SoundManager) SetVolume(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.volume = math.Max(0, math.Min(1, volume))
	sm.apply()
}

// Volume 当前总音量
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// apply 把静音开关和音量同步到总音量控制，调用方需持有 mu
func (sm *SoundManager) apply() {
	sm.master.Silent = sm.muted || sm.volume <= 0
	if sm.volume > 0 {
		sm.master.Volume = math.Log2(sm.volume)
	}
}

// Active 混音器中正在播放的声音数量
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.mixer.Len()
}

// Cleanup 停止所有声音
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.hum != nil {
		sm.hum.Paused = true
	}
	sm.mixer.Clear()
	sm.hum = nil
}

// lockedStreamer 在锁内拉取采样
type lockedStreamer struct {
	mu *sync.Mutex
	s  beep.Streamer
}

func (l *lockedStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Stream(samples)
}

func (l *lockedStreamer) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Err()
}
