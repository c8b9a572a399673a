package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Sub(t *testing.T) {
	a := Vec3{4, 6, 8}
	b := Vec3{1, 2, 3}
	got := a.Sub(b)
	want := Vec3{3, 4, 5}
	if got != want {
		t.Errorf("Vec3.Sub() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3TryNormalizeZero(t *testing.T) {
	n, ok := Vec3{}.TryNormalize()
	if ok {
		t.Error("TryNormalize of zero vector should report failure")
	}
	if n != (Vec3{}) {
		t.Errorf("TryNormalize of zero vector = %v, want zero", n)
	}
}

func TestVec3Midpoint(t *testing.T) {
	got := Vec3{0, 2, -4}.Midpoint(Vec3{2, 4, 4})
	want := Vec3{1, 3, 0}
	if got != want {
		t.Errorf("Vec3.Midpoint() = %v, want %v", got, want)
	}
}
