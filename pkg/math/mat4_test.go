package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTRS(t *testing.T) {
	m := TRS(Vec3{10, 0, 0}, Vec3{0, 0, 90})
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{10, 1, 0}
	if got.Distance(want) > 0.001 {
		t.Errorf("TRS point = %v, want %v", got, want)
	}
}

func TestEulerXYZRoundTrip(t *testing.T) {
	tests := []Vec3{
		{0, 0, 0},
		{30, 0, 0},
		{0, 45, 0},
		{0, 0, -60},
		{10, 20, 30},
		{-120, 35, 170},
		{0, 90, 0},
		{0, -90, 45},
	}

	for _, angles := range tests {
		m := EulerXYZ(angles)
		back := EulerXYZ(m.EulerXYZ())
		for i := 0; i < 16; i++ {
			if abs(m[i]-back[i]) > 0.001 {
				t.Errorf("EulerXYZ(%v) round trip mismatch at %d: got %v, want %v", angles, i, back[i], m[i])
				break
			}
		}
	}
}

func TestFromBasisIdentity(t *testing.T) {
	m := FromBasis(AxisX, AxisY, AxisZ)
	if m != Identity() {
		t.Errorf("FromBasis(X, Y, Z) = %v, want identity", m)
	}
	if e := m.EulerXYZ(); e != (Vec3{}) {
		t.Errorf("identity EulerXYZ() = %v, want zero", e)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
