package systems

import (
	"github.com/decker502/scanfx/pkg/render"
	"github.com/decker502/scanfx/pkg/scan"
)

// ScanRenderSystem 将扫描点缓冲区提交给实例化绘制器
//
// 每帧最多一次 DrawMeshInstanced 调用；缓冲区为空时不调用。
type ScanRenderSystem struct {
	buffer   *scan.Buffer
	mesh     *render.Mesh
	material *render.Material
}

// NewScanRenderSystem 创建扫描点渲染系统
func NewScanRenderSystem(buffer *scan.Buffer, mesh *render.Mesh, material *render.Material) *ScanRenderSystem {
	return &ScanRenderSystem{
		buffer:   buffer,
		mesh:     mesh,
		material: material,
	}
}

// Draw 提交一次实例化绘制，返回实例数
func (s *ScanRenderSystem) Draw(drawer render.InstancedDrawer) int {
	if s.buffer.Len() == 0 || drawer == nil {
		return 0
	}
	transforms, colors := s.buffer.Materialize()
	drawer.DrawMeshInstanced(s.mesh, s.material, transforms, colors, len(transforms))
	return len(transforms)
}
