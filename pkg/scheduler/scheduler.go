// Package scheduler 提供在帧循环中推进的协作式周期任务
//
// 任务不在独立 goroutine 中运行：宿主每帧调用 Advance(now)，
// 到期的任务在调用方线程上同步执行，因此任务与帧逻辑之间无需加锁。
package scheduler

import (
	"log"
	"math"
)

// Task 周期任务回调，now 为本次执行的时间（秒）
type Task func(now float64)

// Handle 周期任务句柄，用于显式停止任务
type Handle struct {
	name     string
	interval float64
	next     float64
	fn       Task
	stopped  bool
	runs     int
}

// Stop 停止任务，之后不再执行；可重复调用
func (h *Handle) Stop() {
	h.stopped = true
}

// Stopped 任务是否已停止
func (h *Handle) Stopped() bool {
	return h.stopped
}

// Runs 任务已执行次数
func (h *Handle) Runs() int {
	return h.runs
}

// Name 任务名称
func (h *Handle) Name() string {
	return h.name
}

// Scheduler 协作式周期任务调度器
type Scheduler struct {
	tasks []*Handle
}

// New 创建调度器
func New() *Scheduler {
	return &Scheduler{tasks: make([]*Handle, 0, 4)}
}

// Every 注册一个每隔 interval 秒执行一次的任务
// 首次执行时间为 start+interval；interval 必须为正
func (s *Scheduler) Every(name string, interval, start float64, fn Task) *Handle {
	if interval <= 0 || math.IsNaN(interval) {
		log.Printf("[Scheduler] Warning: task %q has invalid interval %.4f, using 1s", name, interval)
		interval = 1
	}
	h := &Handle{
		name:     name,
		interval: interval,
		next:     start + interval,
		fn:       fn,
	}
	s.tasks = append(s.tasks, h)
	return h
}

// Advance 推进调度器到 now 时刻，执行所有到期任务
//
// 一帧内同一任务最多执行一次：下一次执行时间从本次执行时刻起算，
// 错过的周期（如帧率过低）不会连续补跑。
func (s *Scheduler) Advance(now float64) {
	for _, h := range s.tasks {
		if h.stopped || now < h.next {
			continue
		}
		h.fn(now)
		h.runs++
		h.next = now + h.interval
	}

	// 回收已停止的任务
	kept := s.tasks[:0]
	for _, h := range s.tasks {
		if !h.stopped {
			kept = append(kept, h)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
}

// StopAll 停止所有任务
func (s *Scheduler) StopAll() {
	for _, h := range s.tasks {
		h.Stop()
	}
	s.tasks = s.tasks[:0]
}

// Len 返回仍在运行的任务数
func (s *Scheduler) Len() int {
	n := 0
	for _, h := range s.tasks {
		if !h.stopped {
			n++
		}
	}
	return n
}
