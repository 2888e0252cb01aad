// Package physics 提供扫描器所需的最小物理设施：
// 碰撞体形状、射线求交、命名碰撞层、层掩码以及层间碰撞矩阵。
package physics

import (
	"fmt"
	"sort"
)

// Layer 碰撞层编号（0-31）
type Layer uint8

// MaxLayers 最多支持的层数
const MaxLayers = 32

// LayerMask 层掩码，第 n 位表示包含第 n 层
type LayerMask uint32

// AllLayers 包含所有层的掩码
const AllLayers LayerMask = 0xFFFFFFFF

// MaskOf 由若干层构造掩码
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Contains 判断掩码是否包含指定层
func (m LayerMask) Contains(l Layer) bool {
	return m&(1<<l) != 0
}

// LayerRegistry 层名与编号的映射
type LayerRegistry struct {
	byName map[string]Layer
}

// NewLayerRegistry 由 名称->编号 表创建层注册表
func NewLayerRegistry(layers map[string]int) (*LayerRegistry, error) {
	r := &LayerRegistry{byName: make(map[string]Layer, len(layers))}
	for name, idx := range layers {
		if idx < 0 || idx >= MaxLayers {
			return nil, fmt.Errorf("layer %q index %d out of range [0, %d)", name, idx, MaxLayers)
		}
		r.byName[name] = Layer(idx)
	}
	return r, nil
}

// NameToLayer 按名称查找层
func (r *LayerRegistry) NameToLayer(name string) (Layer, bool) {
	l, ok := r.byName[name]
	return l, ok
}

// MaskFromNames 由层名列表构造掩码，未知层名返回错误
func (r *LayerRegistry) MaskFromNames(names []string) (LayerMask, error) {
	var m LayerMask
	for _, name := range names {
		l, ok := r.byName[name]
		if !ok {
			return 0, fmt.Errorf("unknown layer %q", name)
		}
		m |= 1 << l
	}
	return m, nil
}

// Names 返回已注册层名（排序）
func (r *LayerRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LayerMatrix 层间碰撞矩阵，默认所有层互相碰撞
type LayerMatrix struct {
	ignore [MaxLayers]LayerMask
}

// NewLayerMatrix 创建默认矩阵（全部碰撞）
func NewLayerMatrix() *LayerMatrix {
	return &LayerMatrix{}
}

// IgnoreLayerCollision 设置两层之间是否忽略碰撞，对称且幂等
func (lm *LayerMatrix) IgnoreLayerCollision(a, b Layer, ignore bool) {
	if ignore {
		lm.ignore[a] |= 1 << b
		lm.ignore[b] |= 1 << a
		return
	}
	lm.ignore[a] &^= 1 << b
	lm.ignore[b] &^= 1 << a
}

// ShouldCollide 判断两层是否碰撞
func (lm *LayerMatrix) ShouldCollide(a, b Layer) bool {
	return lm.ignore[a]&(1<<b) == 0
}
