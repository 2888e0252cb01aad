// Package audio 合成扫描器音效：扫描时的持续嗡鸣和小球销毁时的短促提示音
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate 所有音效的采样率，与 ebiten 音频上下文一致
const SampleRate = beep.SampleRate(48000)

const (
	humBaseFreq    = 110.0
	humWobbleFreq  = 6.0
	humAmplitude   = 0.12
	popDuration    = 120 * time.Millisecond
	popStartFreq   = 1320.0
	popEndFreq     = 440.0
	popAmplitude   = 0.35
	popAttack      = 5 * time.Millisecond
	clickFrequency = 2400.0
	clickDuration  = 25 * time.Millisecond
)

// humGenerator 扫描嗡鸣：低频正弦 + 轻微颤音，无限长
type humGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
}

// NewHum 创建扫描嗡鸣
func NewHum(sr beep.SampleRate) beep.Streamer {
	return &humGenerator{sr: sr}
}

func (g *humGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		freq := humBaseFreq * (1 + 0.02*math.Sin(2*math.Pi*humWobbleFreq*t))

		v := math.Sin(2*math.Pi*g.phase) + 0.3*math.Sin(4*math.Pi*g.phase)
		v *= humAmplitude / 1.3

		samples[i][0] = v
		samples[i][1] = v

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *humGenerator) Err() error { return nil }

// sweepGenerator 指数下滑的正弦，带起音和线性衰减
type sweepGenerator struct {
	sr        beep.SampleRate
	total     int
	attack    int
	pos       int
	phase     float64
	from, to  float64
	amplitude float64
}

// NewPop 创建小球销毁提示音
func NewPop(sr beep.SampleRate) beep.Streamer {
	return &sweepGenerator{
		sr:        sr,
		total:     sr.N(popDuration),
		attack:    sr.N(popAttack),
		from:      popStartFreq,
		to:        popEndFreq,
		amplitude: popAmplitude,
	}
}

func (g *sweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.from * math.Pow(g.to/g.from, progress)

		env := 1 - progress
		if g.pos < g.attack && g.attack > 0 {
			env = float64(g.pos) / float64(g.attack)
		}

		v := g.amplitude * env * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = v
		samples[i][1] = v

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *sweepGenerator) Err() error { return nil }

// NewClick 创建清空扫描点时的短促点击音
func NewClick(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, clickFrequency)
	if err != nil {
		return nil, err
	}
	return withVolume(beep.Take(sr.N(clickDuration), sine), 0.2), nil
}

// withVolume 按线性音量缩放，vol <= 0 时静音
func withVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
