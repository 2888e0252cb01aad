package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// bytesPerFrame float32 立体声每帧字节数
const bytesPerFrame = 8

// PCMReader 将 beep.Streamer 转换为 32 位浮点小端立体声字节流
// 输入流结束后输出静音，播放器不会因 EOF 停止
type PCMReader struct {
	streamer beep.Streamer
	buf      [][2]float64
	drained  bool
}

// NewPCMReader 创建 PCM 读取器
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{
		streamer: s,
		buf:      make([][2]float64, 512),
	}
}

// Read 实现 io.Reader
func (r *PCMReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	written := 0
	for frames > 0 {
		chunk := r.buf[:min(frames, len(r.buf))]
		n := 0
		if !r.drained {
			var ok bool
			n, ok = r.streamer.Stream(chunk)
			if !ok {
				r.drained = true
			}
		}
		for i := n; i < len(chunk); i++ {
			chunk[i] = [2]float64{}
		}
		for _, frame := range chunk {
			binary.LittleEndian.PutUint32(p[written:], math.Float32bits(float32(frame[0])))
			binary.LittleEndian.PutUint32(p[written+4:], math.Float32bits(float32(frame[1])))
			written += bytesPerFrame
		}
		frames -= len(chunk)
	}
	return written, nil
}

// EbitenSink 通过 ebiten 音频上下文输出（桌面/移动前端使用）
type EbitenSink struct {
	Context *audio.Context

	player *audio.Player
}

// Start 实现 Sink
func (s *EbitenSink) Start(streamer beep.Streamer) error {
	if s.Context == nil {
		return fmt.Errorf("audio context is nil")
	}
	if s.Context.SampleRate() != int(SampleRate) {
		return fmt.Errorf("audio context sample rate %d does not match %d", s.Context.SampleRate(), int(SampleRate))
	}

	player, err := s.Context.NewPlayerF32(NewPCMReader(streamer))
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}
	// 缩短缓冲，降低按键到发声的延迟
	player.SetBufferSize(50 * time.Millisecond)
	player.Play()
	s.player = player
	return nil
}
