package scenes

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/config"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/game"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/input"
	"github.com/decker502/scanfx/pkg/physics"
	"github.com/decker502/scanfx/pkg/render"
	"github.com/decker502/scanfx/pkg/scan"
	"github.com/decker502/scanfx/pkg/scheduler"
	"github.com/decker502/scanfx/pkg/systems"
)

const (
	// cameraNear 相机近裁剪面
	cameraNear = 0.05
	// sweepTaskName 过期清理任务名
	sweepTaskName = "scan-expiry-sweep"
)

// StepEvents 一帧内发生的、前端可能需要响应的事件（音效等）
type StepEvents struct {
	Scanning     bool
	BallsSpawned int
	BallsRemoved int
	Cleared      bool
	Paused       bool
}

// ScanWorld 扫描演示的世界状态，与具体前端无关
//
// 持有实体、扫描点缓冲区、调度器和全部系统，
// 每帧由前端调用 Step 推进，再调用 DrawScene/DrawPoints 绘制。
type ScanWorld struct {
	cfg   *config.Config
	clock *game.Clock

	entityManager *ecs.EntityManager
	layers        *physics.LayerRegistry
	matrix        *physics.LayerMatrix
	buffer        *scan.Buffer
	scheduler     *scheduler.Scheduler
	sweep         *scheduler.Handle

	cameraSystem      *systems.CameraSystem
	scannerSystem     *systems.ScannerSystem
	ballSystem        *systems.BallSystem
	physicsSystem     *systems.PhysicsSystem
	lifetimeSystem    *systems.LifetimeSystem
	scanRenderSystem  *systems.ScanRenderSystem
	sceneRenderSystem *systems.SceneRenderSystem

	cameraEntity ecs.EntityID
	destroyMask  physics.LayerMask
}

// NewScanWorld 根据配置创建世界
//
// 参数:
//   - cfg: 已校验的配置
//   - prefs: 用户偏好（面片尺寸、线扫描方向），可为 nil
//   - seed: 随机种子
func NewScanWorld(cfg *config.Config, prefs *game.Settings, seed int64) (*ScanWorld, error) {
	layers, err := physics.NewLayerRegistry(cfg.Scene.Layers)
	if err != nil {
		return nil, fmt.Errorf("invalid layer table: %w", err)
	}
	scanMask, err := layers.MaskFromNames(cfg.Scanner.ScanLayers)
	if err != nil {
		return nil, fmt.Errorf("invalid scan layers: %w", err)
	}
	envLayer, ok := layers.NameToLayer(cfg.Scene.EnvironmentLayer)
	if !ok {
		return nil, fmt.Errorf("unknown environment layer %q", cfg.Scene.EnvironmentLayer)
	}
	ballLayer, ok := layers.NameToLayer(cfg.Ball.Layer)
	if !ok {
		return nil, fmt.Errorf("unknown ball layer %q", cfg.Ball.Layer)
	}

	w := &ScanWorld{
		cfg:           cfg,
		clock:         game.NewClock(),
		entityManager: ecs.NewEntityManager(),
		layers:        layers,
		matrix:        physics.NewLayerMatrix(),
		buffer:        scan.NewBuffer(cfg.Scanner.Capacity),
		scheduler:     scheduler.New(),
		destroyMask:   physics.MaskOf(ballLayer, envLayer),
	}

	w.buildScene(envLayer)
	w.cameraEntity = w.createCamera(prefs)

	rng := rand.New(rand.NewSource(seed))
	em := w.entityManager
	w.cameraSystem = systems.NewCameraSystem(em, w.cameraEntity)
	w.scannerSystem = systems.NewScannerSystem(em, w.buffer, cfg.Scanner, scanMask, rng, w.cameraEntity)
	w.ballSystem = systems.NewBallSystem(em, w.matrix, cfg.Ball, ballLayer, rng)
	w.physicsSystem = systems.NewPhysicsSystem(em, w.matrix, cfg.Ball.Gravity, cfg.Ball.Bounce)
	w.lifetimeSystem = systems.NewLifetimeSystem(em)
	w.scanRenderSystem = systems.NewScanRenderSystem(w.buffer, render.QuadMesh(), render.ScanPointMaterial())
	w.sceneRenderSystem = systems.NewSceneRenderSystem(em)

	lifetime := cfg.Scanner.LifetimeSeconds
	w.sweep = w.scheduler.Every(sweepTaskName, cfg.Scanner.SweepIntervalSeconds, w.clock.Now(), func(now float64) {
		w.buffer.RemoveExpired(now, lifetime)
	})

	log.Printf("[ScanWorld] Created: capacity=%d, layers=%v, boxes=%d, seed=%d",
		cfg.Scanner.Capacity, layers.Names(), len(cfg.Scene.Boxes), seed)
	return w, nil
}

// buildScene 创建地面和静态盒子
func (w *ScanWorld) buildScene(envLayer physics.Layer) {
	em := w.entityManager

	ground := em.CreateEntity()
	ecs.AddComponent(em, ground, &components.TransformComponent{})
	ecs.AddComponent(em, ground, &components.ColliderComponent{
		Shape:  physics.Plane{Normal: geom.Up},
		Layer:  envLayer,
		Static: true,
	})

	for _, box := range w.cfg.Scene.Boxes {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.TransformComponent{Position: vec3(box.Center)})
		ecs.AddComponent(em, id, &components.ColliderComponent{
			Shape:  physics.Box{HalfExtents: vec3(box.HalfExtents)},
			Layer:  envLayer,
			Static: true,
		})
	}
}

// createCamera 创建相机/扫描器实体
func (w *ScanWorld) createCamera(prefs *game.Settings) ecs.EntityID {
	em := w.entityManager
	camCfg := w.cfg.Scene.Camera
	scanCfg := w.cfg.Scanner

	size := scanCfg.InitialPatchSize
	vertical := false
	if prefs != nil {
		size = geom.Clamp(prefs.PatchSize, scanCfg.PatchSize.Min, scanCfg.PatchSize.Max)
		vertical = prefs.LineVertical
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Position: vec3(camCfg.Position)})
	ecs.AddComponent(em, id, &components.CameraComponent{
		Yaw:       radians(camCfg.Yaw),
		Pitch:     radians(camCfg.Pitch),
		FOV:       radians(camCfg.FOV),
		Near:      cameraNear,
		MoveSpeed: camCfg.MoveSpeed,
		LookSpeed: radians(camCfg.LookSpeed),
	})
	ecs.AddComponent(em, id, &components.ScannerComponent{
		PlaneWidth:   size,
		PlaneHeight:  size,
		LineVertical: vertical,
	})
	return id
}

// Step 推进一帧
//
// 顺序: 相机 -> 扫描（含容量淘汰）-> 过期清理 -> 小球输入 -> 物理 -> 生命周期 -> 回收实体
//
// 暂停时游戏时间冻结，本帧不执行任何系统。
func (w *ScanWorld) Step(in input.Snapshot, dt float64) StepEvents {
	var ev StepEvents

	if in.TogglePause {
		w.SetPaused(!w.clock.IsPaused())
	}
	dt = w.clock.Tick(dt)
	if w.clock.IsPaused() {
		ev.Paused = true
		return ev
	}
	now := w.clock.Now()

	w.cameraSystem.Update(in, dt)

	if in.ClearScan {
		w.buffer.Clear()
		ev.Cleared = true
		log.Printf("[ScanWorld] Scan points cleared")
	}

	w.scannerSystem.Update(in, now)
	if sc, ok := ecs.GetComponent[*components.ScannerComponent](w.entityManager, w.cameraEntity); ok {
		ev.Scanning = sc.Mode != components.ScanModeIdle
	}

	w.scheduler.Advance(now)

	eye, cam, ok := w.cameraSystem.Eye()
	if ok {
		basis := cam.Basis()
		if in.SpawnBall {
			w.ballSystem.SpawnInFront(eye, basis, now)
			ev.BallsSpawned++
		}
		if in.DestroyBall {
			ray := geom.NewRay(eye, basis.Forward)
			if id, _, hit := systems.RaycastEntities(w.entityManager, ray, w.cfg.Scanner.RayRange, w.destroyMask); hit {
				if w.ballSystem.DestroyBall(id) {
					ev.BallsRemoved++
				}
			}
		}
	}

	w.physicsSystem.Update(dt)
	ev.BallsRemoved += len(w.lifetimeSystem.Update(now))

	w.entityManager.RemoveMarkedEntities()
	return ev
}

// Projector 返回当前相机在给定画面尺寸下的投影
func (w *ScanWorld) Projector(width, height, cellAspect float64) render.Projector {
	eye, cam, ok := w.cameraSystem.Eye()
	if !ok {
		return render.NewProjector(geom.Zero, geom.BasisFromYawPitch(0, 0), math.Pi/3, cameraNear, width, height)
	}
	p := render.NewProjector(eye, cam.Basis(), cam.FOV, cam.Near, width, height)
	if cellAspect > 0 {
		p.CellAspect = cellAspect
	}
	return p
}

// DrawScene 绘制场景几何
func (w *ScanWorld) DrawScene(canvas render.Canvas) {
	w.sceneRenderSystem.Draw(canvas)
}

// DrawPoints 提交扫描点实例化绘制，返回实例数
func (w *ScanWorld) DrawPoints(drawer render.InstancedDrawer) int {
	return w.scanRenderSystem.Draw(drawer)
}

// Stats 返回 HUD 统计（FPS 由前端填写）
func (w *ScanWorld) Stats() game.Stats {
	s := game.Stats{
		Records:  w.buffer.Len(),
		Capacity: w.buffer.Capacity(),
		Balls:    w.ballSystem.Count(),
		Paused:   w.clock.IsPaused(),
	}
	if sc, ok := ecs.GetComponent[*components.ScannerComponent](w.entityManager, w.cameraEntity); ok {
		s.Mode = sc.Mode.String()
		s.PatchWidth = sc.PlaneWidth
		s.PatchHeight = sc.PlaneHeight
		s.LineVertical = sc.LineVertical
		s.Rays = sc.LastRayCount
		s.Hits = sc.LastHitCount
	}
	return s
}

// StorePreferences 把当前扫描器状态写回设置（不保存到磁盘）
func (w *ScanWorld) StorePreferences(sm *game.SettingsManager) {
	if sm == nil {
		return
	}
	sc, ok := ecs.GetComponent[*components.ScannerComponent](w.entityManager, w.cameraEntity)
	if !ok {
		return
	}
	sm.SetPatchSize(sc.PlaneWidth, w.cfg.Scanner.PatchSize.Min, w.cfg.Scanner.PatchSize.Max)
	sm.SetLineVertical(sc.LineVertical)
}

// Now 当前游戏时间
func (w *ScanWorld) Now() float64 {
	return w.clock.Now()
}

// SetPaused 暂停或恢复游戏时间
func (w *ScanWorld) SetPaused(paused bool) {
	if w.clock.IsPaused() == paused {
		return
	}
	w.clock.SetPaused(paused)
	log.Printf("[ScanWorld] Paused=%v at %.2fs", paused, w.clock.Now())
}

// Paused 游戏时间是否暂停
func (w *ScanWorld) Paused() bool {
	return w.clock.IsPaused()
}

// Buffer 扫描点缓冲区
func (w *ScanWorld) Buffer() *scan.Buffer {
	return w.buffer
}

// Balls 小球系统
func (w *ScanWorld) Balls() *systems.BallSystem {
	return w.ballSystem
}

// EntityManager 实体管理器
func (w *ScanWorld) EntityManager() *ecs.EntityManager {
	return w.entityManager
}

// Close 停止周期任务，之后 Step 不再执行过期清理
func (w *ScanWorld) Close() {
	w.sweep.Stop()
	w.scheduler.StopAll()
	log.Printf("[ScanWorld] Closed after %.2fs (%d sweeps)", w.clock.Now(), w.sweep.Runs())
}

func vec3(v [3]float64) geom.Vec3 {
	return geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
