package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"x to y", AxisX, AxisY},
		{"y to z", AxisY, AxisZ},
		{"oblique", Vec3{1, 1, 0}, Vec3{0, 1, 1}},
		{"same", AxisZ, AxisZ},
		{"antiparallel x", AxisX, Vec3{-1, 0, 0}},
		{"antiparallel y", AxisY, Vec3{0, -1, 0}},
		{"unnormalized", Vec3{0, 0, 5}, Vec3{3, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatBetween(tt.from, tt.to).Rotate(tt.from.Normalize())
			want := tt.to.Normalize()
			if got.Distance(want) > 0.001 {
				t.Errorf("QuatBetween(%v, %v) rotates to %v, want %v", tt.from, tt.to, got, want)
			}
		})
	}
}

func TestAngleBetweenEuler(t *testing.T) {
	// X onto Z is -90 degrees about Y.
	got := AngleBetweenEuler(AxisX, AxisZ)
	if abs(got.X) > 0.01 || abs(got.Y+90) > 0.01 || abs(got.Z) > 0.01 {
		t.Errorf("AngleBetweenEuler(X, Z) = %v, want (0, -90, 0)", got)
	}

	// Y onto X is -90 degrees about Z.
	got = AngleBetweenEuler(AxisY, AxisX)
	if abs(got.X) > 0.01 || abs(got.Y) > 0.01 || abs(got.Z+90) > 0.01 {
		t.Errorf("AngleBetweenEuler(Y, X) = %v, want (0, 0, -90)", got)
	}

	got = AngleBetweenEuler(AxisZ, AxisZ)
	if got != (Vec3{}) {
		t.Errorf("AngleBetweenEuler(Z, Z) = %v, want zero", got)
	}
}
