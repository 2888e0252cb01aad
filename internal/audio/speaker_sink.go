package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerSink 通过 beep/speaker 直接输出到系统声卡（终端前端使用）
type SpeakerSink struct {
	// BufferDuration 声卡缓冲时长，越小延迟越低
	BufferDuration time.Duration
}

// Start 实现 Sink
func (s SpeakerSink) Start(streamer beep.Streamer) error {
	buf := s.BufferDuration
	if buf <= 0 {
		buf = 100 * time.Millisecond
	}
	if err := speaker.Init(SampleRate, SampleRate.N(buf)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(streamer)
	return nil
}

// CloseSpeaker 关闭声卡输出
func CloseSpeaker() {
	speaker.Close()
}
