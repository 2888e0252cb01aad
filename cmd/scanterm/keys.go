package main

import (
	"time"

	"github.com/decker502/scanfx/pkg/input"
	"github.com/gdamore/tcell/v2"
)

// defaultHoldWindow 终端只报告按下与自动重复，最后一次事件之后的这段时间内视为仍按住
const defaultHoldWindow = 300 * time.Millisecond

// action 终端键位映射到的动作
type action int

const (
	actNone action = iota
	actForward
	actBack
	actLeft
	actRight
	actUp
	actDown
	actYawLeft
	actYawRight
	actPitchUp
	actPitchDown
	actAreaScan
	actLineScan
	actToggleLine
	actSpawnBall
	actDestroyBall
	actClear
	actMute
	actGrow
	actShrink
	actToggleHUD
	actTogglePause
	actVolumeUp
	actVolumeDown
	actQuit
	actCount
)

// keyTracker 把 tcell 事件合成为每帧的 input.Snapshot
//
// 键位：
//   - F（或鼠标左键）：面扫描，G（或鼠标右键）：线扫描
//   - +/-（或滚轮）：调整面片尺寸，R：切换线扫描方向
//   - WASD / Space / C：移动，方向键：转向
//   - B：生成小球，X：销毁准星处的小球
//   - Delete / Backspace：清空扫描点，M：静音，[ / ]：音量，H：HUD，P：暂停
//   - Esc / Q / Ctrl-C：退出
type keyTracker struct {
	holdWindow time.Duration
	lastSeen   [actCount]time.Time
	pressed    [actCount]int

	scroll     float64
	mouseLeft  bool
	mouseRight bool
}

func newKeyTracker(holdWindow time.Duration) *keyTracker {
	if holdWindow <= 0 {
		holdWindow = defaultHoldWindow
	}
	return &keyTracker{holdWindow: holdWindow}
}

// keyAction 返回按键事件对应的动作
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyUp:
		return actPitchUp
	case tcell.KeyDown:
		return actPitchDown
	case tcell.KeyLeft:
		return actYawLeft
	case tcell.KeyRight:
		return actYawRight
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return actClear
	case tcell.KeyRune:
	default:
		return actNone
	}

	switch ev.Rune() {
	case 'w', 'W':
		return actForward
	case 's', 'S':
		return actBack
	case 'a', 'A':
		return actLeft
	case 'd', 'D':
		return actRight
	case ' ':
		return actUp
	case 'c', 'C':
		return actDown
	case 'f', 'F':
		return actAreaScan
	case 'g', 'G':
		return actLineScan
	case 'r', 'R':
		return actToggleLine
	case 'b', 'B':
		return actSpawnBall
	case 'x', 'X':
		return actDestroyBall
	case 'm', 'M':
		return actMute
	case '+', '=':
		return actGrow
	case '-', '_':
		return actShrink
	case 'h', 'H':
		return actToggleHUD
	case 'p', 'P':
		return actTogglePause
	case ']':
		return actVolumeUp
	case '[':
		return actVolumeDown
	case 'q', 'Q':
		return actQuit
	}
	return actNone
}

// HandleEvent 处理一个 tcell 事件，返回映射到的动作
//
// 自动重复的事件只刷新按住状态；距上一次事件超过 holdWindow 才记为一次新的按下。
// 尺寸调整例外，每个事件都计一步。
func (k *keyTracker) HandleEvent(ev tcell.Event, now time.Time) action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act := keyAction(ev)
		if act == actNone {
			return actNone
		}
		if !k.held(act, now) {
			k.pressed[act]++
		}
		k.lastSeen[act] = now
		switch act {
		case actGrow:
			k.scroll++
		case actShrink:
			k.scroll--
		}
		return act

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		k.mouseLeft = buttons&tcell.Button1 != 0
		k.mouseRight = buttons&tcell.Button2 != 0
		if buttons&tcell.WheelUp != 0 {
			k.scroll++
		}
		if buttons&tcell.WheelDown != 0 {
			k.scroll--
		}
	}
	return actNone
}

// held 动作是否仍视为按住
func (k *keyTracker) held(act action, now time.Time) bool {
	seen := k.lastSeen[act]
	return !seen.IsZero() && now.Sub(seen) < k.holdWindow
}

// edge 消费一次边沿触发
func (k *keyTracker) edge(act action) bool {
	if k.pressed[act] == 0 {
		return false
	}
	k.pressed[act] = 0
	return true
}

// Snapshot 合成当前帧的输入快照，并清空边沿触发和滚轮增量
func (k *keyTracker) Snapshot(now time.Time) input.Snapshot {
	in := input.Snapshot{
		ScrollY:       k.scroll,
		ToggleLine:    k.edge(actToggleLine),
		PrimaryHeld:   k.held(actAreaScan, now) || k.mouseLeft,
		SecondaryHeld: k.held(actLineScan, now) || k.mouseRight,
		SpawnBall:     k.edge(actSpawnBall),
		DestroyBall:   k.edge(actDestroyBall),
		ClearScan:     k.edge(actClear),
		ToggleMute:    k.edge(actMute),
		TogglePause:   k.edge(actTogglePause),
		ToggleHUD:     k.edge(actToggleHUD),
		VolumeStep:    k.volumeStep(),
		MoveForward:   k.axis(actBack, actForward, now),
		MoveRight:     k.axis(actLeft, actRight, now),
		MoveUp:        k.axis(actDown, actUp, now),
		LookYaw:       k.axis(actYawLeft, actYawRight, now),
		LookPitch:     k.axis(actPitchDown, actPitchUp, now),
	}
	k.scroll = 0
	k.pressed[actGrow] = 0
	k.pressed[actShrink] = 0
	return in
}

// volumeStep 消费音量调节请求，取值 -1/0/1
func (k *keyTracker) volumeStep() float64 {
	v := 0.0
	if k.edge(actVolumeDown) {
		v--
	}
	if k.edge(actVolumeUp) {
		v++
	}
	return v
}

func (k *keyTracker) axis(negative, positive action, now time.Time) float64 {
	v := 0.0
	if k.held(negative, now) {
		v--
	}
	if k.held(positive, now) {
		v++
	}
	return v
}

// termSource 以 keyTracker 为后端的 input.Source
type termSource struct {
	keys *keyTracker
	now  func() time.Time
}

// Poll 实现 input.Source
func (s *termSource) Poll() input.Snapshot {
	return s.keys.Snapshot(s.now())
}
