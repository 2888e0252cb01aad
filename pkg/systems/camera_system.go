package systems

import (
	"math"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/input"
)

// MaxPitch 俯仰角上限（弧度），防止相机翻转
var MaxPitch = 89 * math.Pi / 180

// CameraSystem 自由飞行相机
// 根据输入快照更新相机实体的朝向和位置。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建相机系统
func NewCameraSystem(em *ecs.EntityManager, cameraEntity ecs.EntityID) *CameraSystem {
	return &CameraSystem{
		entityManager: em,
		cameraEntity:  cameraEntity,
	}
}

// Update 更新相机
func (cs *CameraSystem) Update(in input.Snapshot, dt float64) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	camera.Yaw += in.LookYaw * camera.LookSpeed * dt
	camera.Pitch = geom.Clamp(camera.Pitch+in.LookPitch*camera.LookSpeed*dt, -MaxPitch, MaxPitch)

	basis := camera.Basis()
	move := basis.Forward.Scale(in.MoveForward).
		Add(basis.Right.Scale(in.MoveRight)).
		Add(geom.Up.Scale(in.MoveUp))
	if move.LengthSquared() > 1 {
		move = move.Normalize()
	}
	transform.Position = transform.Position.Add(move.Scale(camera.MoveSpeed * dt))
}

// Eye 返回相机位置和朝向
func (cs *CameraSystem) Eye() (geom.Vec3, *components.CameraComponent, bool) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return geom.Vec3{}, nil, false
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return geom.Vec3{}, nil, false
	}
	return transform.Position, camera, true
}
