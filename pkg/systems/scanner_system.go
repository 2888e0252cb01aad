package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/config"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/input"
	"github.com/decker502/scanfx/pkg/physics"
	"github.com/decker502/scanfx/pkg/scan"
)

// ScannerSystem 散射生成器
//
// 每帧根据输入调整面片尺寸、切换线扫描方向，并在按住主/副按键时
// 从相机发射一组射线，把命中点写入扫描点缓冲区。
// 扫描结束后统一执行一次容量淘汰，保证每帧结束时缓冲区不超过容量。
type ScannerSystem struct {
	entityManager *ecs.EntityManager
	buffer        *scan.Buffer
	cfg           config.ScannerConfig
	mask          physics.LayerMask
	rng           *rand.Rand

	// scannerEntity 同时拥有 Transform/Camera/Scanner 组件的实体
	scannerEntity ecs.EntityID

	// 每帧复用的临时数组
	origins []geom.Vec3
	bodies  []physics.Body
}

// NewScannerSystem 创建散射生成器
//
// 参数:
//   - em: 实体管理器
//   - buffer: 扫描点缓冲区
//   - cfg: 扫描参数
//   - mask: 射线检测的层掩码
//   - rng: 随机源（测试时传入固定种子）
//   - scannerEntity: 相机/扫描器实体
func NewScannerSystem(em *ecs.EntityManager, buffer *scan.Buffer, cfg config.ScannerConfig, mask physics.LayerMask, rng *rand.Rand, scannerEntity ecs.EntityID) *ScannerSystem {
	return &ScannerSystem{
		entityManager: em,
		buffer:        buffer,
		cfg:           cfg,
		mask:          mask,
		rng:           rng,
		scannerEntity: scannerEntity,
	}
}

// Update 执行一帧扫描
func (s *ScannerSystem) Update(in input.Snapshot, now float64) {
	scanner, ok := ecs.GetComponent[*components.ScannerComponent](s.entityManager, s.scannerEntity)
	if !ok {
		return
	}
	camera, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.scannerEntity)
	if !ok {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.scannerEntity)
	if !ok {
		return
	}

	s.resize(scanner, in.ScrollY)

	if in.ToggleLine {
		scanner.LineVertical = !scanner.LineVertical
		log.Printf("[ScannerSystem] Line orientation: vertical=%v", scanner.LineVertical)
	}

	scanner.Mode = components.ScanModeIdle
	scanner.LastRayCount = 0
	scanner.LastHitCount = 0

	if s.buffer.Len() < s.buffer.Capacity() {
		basis := camera.Basis()
		switch {
		case in.PrimaryHeld:
			scanner.Mode = components.ScanModeArea
			s.origins = scan.AreaOrigins(s.origins[:0], transform.Position, basis,
				scanner.PlaneWidth, scanner.PlaneHeight, s.cfg.AreaRaysPerUnit, s.rng)
		case in.SecondaryHeld:
			scanner.Mode = components.ScanModeLine
			axis := basis.Right
			if scanner.LineVertical {
				axis = basis.Up
			}
			s.origins = scan.LineOrigins(s.origins[:0], transform.Position, axis,
				scanner.PlaneWidth, s.cfg.LineRaysPerUnit, s.rng)
		}

		if scanner.Mode != components.ScanModeIdle {
			scanner.LastRayCount = len(s.origins)
			scanner.LastHitCount = s.scatter(basis.Forward, now)
		}
	}

	if dropped := s.buffer.EnforceCapacity(); dropped > 0 {
		log.Printf("[ScannerSystem] Capacity reached, dropped %d oldest points", dropped)
	}
}

// resize 按滚轮增量调整面片尺寸，宽高分别钳制到配置范围
func (s *ScannerSystem) resize(scanner *components.ScannerComponent, scroll float64) {
	if scroll == 0 {
		return
	}
	delta := scroll * s.cfg.ScrollStep
	scanner.PlaneWidth = geom.Clamp(scanner.PlaneWidth+delta, s.cfg.PatchSize.Min, s.cfg.PatchSize.Max)
	scanner.PlaneHeight = geom.Clamp(scanner.PlaneHeight+delta, s.cfg.PatchSize.Min, s.cfg.PatchSize.Max)
}

// scatter 沿 direction 从每个起点发射射线，命中即追加一条扫描记录
// 返回命中数
func (s *ScannerSystem) scatter(direction geom.Vec3, now float64) int {
	s.bodies = CollectBodies(s.entityManager, s.bodies)

	scale := geom.Vec3{X: s.cfg.PointScale, Y: s.cfg.PointScale, Z: s.cfg.PointScale}
	hits := 0
	for _, origin := range s.origins {
		hit, ok := physics.Raycast(s.bodies, geom.NewRay(origin, direction), s.cfg.RayRange, s.mask)
		if !ok {
			continue
		}
		s.buffer.Append(scan.Record{
			Transform: geom.TRS(hit.Point, geom.IdentityQuat(), scale),
			CreatedAt: now + s.cfg.SpawnDelay.Lerp(s.rng.Float64()),
			Color: scan.Color{
				B: float32(s.cfg.Blue.Lerp(s.rng.Float64())),
				A: 1,
			},
		})
		hits++
	}
	return hits
}

// Entity 返回扫描器实体ID
func (s *ScannerSystem) Entity() ecs.EntityID {
	return s.scannerEntity
}
