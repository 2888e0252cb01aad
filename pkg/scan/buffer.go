package scan

import "github.com/decker502/scanfx/pkg/geom"

// Buffer 有界的扫描点缓冲区
//
// 记录按插入顺序保存。超出容量时从最旧的记录开始截断，
// 过期清理为一次 O(n) 的原地压缩，保持剩余记录的相对顺序。
// 不是并发安全的：所有访问都应在同一逻辑线程上进行。
type Buffer struct {
	records  []Record
	capacity int

	// 渲染数组复用，避免每帧分配
	transforms []geom.Mat4
	colors     []Color
}

// NewBuffer 创建指定容量的缓冲区
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		records:  make([]Record, 0, min(capacity, 4096)),
		capacity: capacity,
	}
}

// Capacity 返回容量上限
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Len 返回当前记录数
func (b *Buffer) Len() int {
	return len(b.records)
}

// IsFull 是否已达到容量
func (b *Buffer) IsFull() bool {
	return len(b.records) >= b.capacity
}

// Append 追加一条记录
// 追加本身不检查容量，超出部分由 EnforceCapacity 统一回收
func (b *Buffer) Append(r Record) {
	b.records = append(b.records, r)
}

// EnforceCapacity 超出容量时丢弃最旧的记录，返回丢弃数量
func (b *Buffer) EnforceCapacity() int {
	excess := len(b.records) - b.capacity
	if excess <= 0 {
		return 0
	}
	n := copy(b.records, b.records[excess:])
	clear(b.records[n:])
	b.records = b.records[:n]
	return excess
}

// RemoveExpired 删除所有 now-CreatedAt > lifetime 的记录，返回删除数量
func (b *Buffer) RemoveExpired(now, lifetime float64) int {
	kept := 0
	for i := range b.records {
		if b.records[i].Expired(now, lifetime) {
			continue
		}
		if kept != i {
			b.records[kept] = b.records[i]
		}
		kept++
	}
	removed := len(b.records) - kept
	clear(b.records[kept:])
	b.records = b.records[:kept]
	return removed
}

// Clear 清空所有记录
func (b *Buffer) Clear() {
	clear(b.records)
	b.records = b.records[:0]
}

// At 返回第 i 条记录（0 为最旧）
func (b *Buffer) At(i int) Record {
	return b.records[i]
}

// Materialize 按当前顺序生成变换数组与颜色数组
// 返回的切片在下一次调用前有效，调用方不应保留
func (b *Buffer) Materialize() ([]geom.Mat4, []Color) {
	n := len(b.records)
	if cap(b.transforms) < n {
		b.transforms = make([]geom.Mat4, n)
		b.colors = make([]Color, n)
	}
	b.transforms = b.transforms[:n]
	b.colors = b.colors[:n]

	for i := range b.records {
		b.transforms[i] = b.records[i].Transform
		b.colors[i] = b.records[i].Color
	}
	return b.transforms, b.colors
}
