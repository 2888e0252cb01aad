package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransformComponent struct {
	X, Y, Z float64
}

type testTintComponent struct {
	B float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTransformComponent{X: 1, Y: 2, Z: 3})

	tr, ok := GetComponent[*testTransformComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if tr.X != 1 || tr.Y != 2 || tr.Z != 3 {
		t.Errorf("Component data mismatch, got (%f, %f, %f)", tr.X, tr.Y, tr.Z)
	}

	// 泛型与反射版本共享同一存储
	if !em.HasComponent(id, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("Reflection lookup should see generically added component")
	}

	if _, ok := GetComponent[*testTintComponent](em, id); ok {
		t.Error("Missing component should not be found")
	}
}

func TestRemoveComponentGeneric(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTintComponent{B: 0.5})

	RemoveComponent[*testTintComponent](em, id)

	if HasComponent[*testTintComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTransformComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.IsAlive(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	// 清理后实体消失
	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.IsAlive(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("Mark should be cleared after cleanup")
	}
}

func TestDestroyEntityTwiceIsSafe(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Double destroy should be queued once, got %d", removed)
	}

	// 对已回收实体再次调用不应入队
	em.DestroyEntity(id)
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("Destroying a reclaimed entity should be a no-op, got %d", removed)
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTransformComponent{X: float64(i)})
		ids = append(ids, id)
	}
	AddComponent(em, ids[1], &testTintComponent{})
	AddComponent(em, ids[3], &testTintComponent{})

	all := GetEntitiesWith1[*testTransformComponent](em)
	if len(all) != 5 {
		t.Fatalf("Expected 5 entities, got %d", len(all))
	}
	for i := range all {
		if all[i] != ids[i] {
			t.Errorf("Result not sorted by ID: index %d got %d, want %d", i, all[i], ids[i])
		}
	}

	tinted := GetEntitiesWith2[*testTransformComponent, *testTintComponent](em)
	if len(tinted) != 2 || tinted[0] != ids[1] || tinted[1] != ids[3] {
		t.Errorf("Expected [%d %d], got %v", ids[1], ids[3], tinted)
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTransformComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testTintComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testTransformComponent, *testTintComponent](em)
	}
}
