package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec3Ops(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %f, want 32", got)
	}
	if got := Right.Cross(Up); got != Forward {
		t.Errorf("Right x Up = %v, want +Z", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v", got)
	}
}

func TestLerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(10, -10, 2)

	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, NewVec3(5, -5, 1)},
	}
	for _, tc := range tests {
		if got := Lerp(a, b, tc.t); !got.ApproxEqual(tc.want, eps) {
			t.Errorf("Lerp(t=%.1f) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestTRSIdentityRotation(t *testing.T) {
	pos := NewVec3(3, 4, 5)
	m := TRS(pos, IdentityQuat(), NewVec3(0.01, 0.01, 0.01))

	if got := m.Translation(); got != pos {
		t.Errorf("Translation = %v, want %v", got, pos)
	}
	if got := m.LossyScale(); !got.ApproxEqual(NewVec3(0.01, 0.01, 0.01), eps) {
		t.Errorf("LossyScale = %v", got)
	}
	// 局部点 (100,0,0) 缩放后偏移 1
	if got := m.MulPoint(NewVec3(100, 0, 0)); !got.ApproxEqual(NewVec3(4, 4, 5), 1e-9) {
		t.Errorf("MulPoint = %v", got)
	}
}

func TestTRSRotation(t *testing.T) {
	// 绕 Y 轴旋转 90°：+Z 转到 +X
	rot := Quat{Y: math.Sin(math.Pi / 4), W: math.Cos(math.Pi / 4)}
	m := TRS(Zero, rot, One)

	if got := m.MulPoint(Forward); !got.ApproxEqual(Right, 1e-9) {
		t.Errorf("Rotated forward = %v, want +X", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := TRS(NewVec3(1, 2, 3), Quat{X: math.Sin(0.15), W: math.Cos(0.15)}, NewVec3(2, 2, 2))
	if got := Identity().Mul(m); got != m {
		t.Errorf("I*M != M")
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(NewVec3(0, 1, 0), NewVec3(0, 0, 5))
	if got := r.At(2); !got.ApproxEqual(NewVec3(0, 1, 2), eps) {
		t.Errorf("At(2) = %v (direction should be normalized)", got)
	}
}

func TestBasisFromYawPitch(t *testing.T) {
	tests := []struct {
		name        string
		yaw, pitch  float64
		forward, up Vec3
		right       Vec3
	}{
		{"默认朝向", 0, 0, Forward, Up, Right},
		{"右转90度", math.Pi / 2, 0, Right, Up, NewVec3(0, 0, -1)},
		{"仰视90度", 0, math.Pi / 2, Up, NewVec3(0, 0, -1), Right},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := BasisFromYawPitch(tc.yaw, tc.pitch)
			if !b.Forward.ApproxEqual(tc.forward, 1e-9) {
				t.Errorf("Forward = %v, want %v", b.Forward, tc.forward)
			}
			if !b.Right.ApproxEqual(tc.right, 1e-9) {
				t.Errorf("Right = %v, want %v", b.Right, tc.right)
			}
			if !b.Up.ApproxEqual(tc.up, 1e-9) {
				t.Errorf("Up = %v, want %v", b.Up, tc.up)
			}
		})
	}
}
