package systems

import (
	"math"
	"testing"

	"github.com/decker502/scanfx/pkg/components"
	"github.com/decker502/scanfx/pkg/ecs"
	"github.com/decker502/scanfx/pkg/geom"
	"github.com/decker502/scanfx/pkg/input"
)

func newCameraWorld() (*ecs.EntityManager, ecs.EntityID, *CameraSystem) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{})
	ecs.AddComponent(em, id, &components.CameraComponent{
		FOV:       math.Pi / 3,
		Near:      0.05,
		MoveSpeed: 2,
		LookSpeed: math.Pi / 2,
	})
	return em, id, NewCameraSystem(em, id)
}

func TestCameraMovesAlongForward(t *testing.T) {
	em, id, cs := newCameraWorld()

	cs.Update(input.Snapshot{MoveForward: 1}, 0.5)

	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if !tr.Position.ApproxEqual(geom.Vec3{Z: 1}, 1e-9) {
		t.Errorf("Position = %+v, want (0,0,1)", tr.Position)
	}
}

func TestCameraDiagonalMoveIsNormalized(t *testing.T) {
	em, id, cs := newCameraWorld()

	cs.Update(input.Snapshot{MoveForward: 1, MoveRight: 1}, 1)

	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if math.Abs(tr.Position.Length()-2) > 1e-9 {
		t.Errorf("moved %v units, want 2", tr.Position.Length())
	}
}

func TestCameraYawTurnsRight(t *testing.T) {
	_, _, cs := newCameraWorld()

	cs.Update(input.Snapshot{LookYaw: 1}, 1)

	_, cam, ok := cs.Eye()
	if !ok {
		t.Fatal("camera not found")
	}
	if !cam.Basis().Forward.ApproxEqual(geom.Vec3{X: 1}, 1e-9) {
		t.Errorf("Forward = %+v, want +X after a quarter turn", cam.Basis().Forward)
	}
}

func TestCameraPitchClamped(t *testing.T) {
	_, _, cs := newCameraWorld()

	for i := 0; i < 10; i++ {
		cs.Update(input.Snapshot{LookPitch: 1}, 1)
	}
	_, cam, _ := cs.Eye()
	if math.Abs(cam.Pitch-MaxPitch) > 1e-12 {
		t.Errorf("Pitch = %v, want clamp %v", cam.Pitch, MaxPitch)
	}

	for i := 0; i < 20; i++ {
		cs.Update(input.Snapshot{LookPitch: -1}, 1)
	}
	if math.Abs(cam.Pitch+MaxPitch) > 1e-12 {
		t.Errorf("Pitch = %v, want clamp %v", cam.Pitch, -MaxPitch)
	}
}
