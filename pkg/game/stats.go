package game

import (
	"fmt"
	"strings"
)

// Stats 每帧刷新的运行统计，用于 HUD 显示
type Stats struct {
	FPS          float64
	Records      int
	Capacity     int
	Balls        int
	Mode         string
	PatchWidth   float64
	PatchHeight  float64
	LineVertical bool
	Rays         int
	Hits         int
	Muted        bool
	Volume       float64
	Paused       bool
}

// Lines 格式化为 HUD 文本行
func (s Stats) Lines() []string {
	orientation := "horizontal"
	if s.LineVertical {
		orientation = "vertical"
	}
	sound := fmt.Sprintf("on (%.0f%%)", s.Volume*100)
	if s.Muted {
		sound = "off"
	}
	fps := fmt.Sprintf("FPS: %.1f", s.FPS)
	if s.Paused {
		fps += "  PAUSED"
	}

	return []string{
		fps,
		fmt.Sprintf("Points: %d / %d", s.Records, s.Capacity),
		fmt.Sprintf("Patch: %.1f x %.1f  Line: %s", s.PatchWidth, s.PatchHeight, orientation),
		fmt.Sprintf("Mode: %s  Rays: %d  Hits: %d", s.Mode, s.Rays, s.Hits),
		fmt.Sprintf("Balls: %d  Sound: %s", s.Balls, sound),
	}
}

// String 返回多行 HUD 文本
func (s Stats) String() string {
	return strings.Join(s.Lines(), "\n")
}
