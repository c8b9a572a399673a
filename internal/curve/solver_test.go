package curve

import (
	"errors"
	"testing"

	"github.com/Faultbox/particle-trail/internal/geometry"
	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/scene"
	"github.com/Faultbox/particle-trail/pkg/math"
)

func newSolver(t *testing.T, s *scene.Scene, opts Options) *PoseSolver {
	t.Helper()
	return NewPoseSolver(s, s, geometry.NewSampler(s, s), opts)
}

func near(a, b math.Vec3, eps float32) bool {
	return a.Distance(b) < eps
}

func TestSolveFrameCount(t *testing.T) {
	for segments := 1; segments <= 12; segments++ {
		s := scene.New()
		_, _ = s.AddCurve("path", []math.Vec3{{}, {X: 3, Y: 1}, {X: 6, Z: 4}, {X: 9, Y: -2, Z: 4}})

		out := newSolver(t, s, DefaultOptions()).Solve("path", segments)
		if out.Skipped() {
			t.Fatalf("Solve(%d) skipped: %v", segments, out.Reason)
		}
		if len(out.Frames) != segments {
			t.Fatalf("Solve(%d) frames = %d, want %d", segments, len(out.Frames), segments)
		}
		for i, f := range out.Frames {
			if f.Time != i {
				t.Errorf("Solve(%d) frame %d time = %d, want %d", segments, i, f.Time, i)
			}
		}
		if s.RibbonCount() != 0 {
			t.Errorf("Solve(%d) left %d ribbons behind", segments, s.RibbonCount())
		}
	}
}

func TestSolveStraightLine(t *testing.T) {
	for _, orienter := range []Orienter{EulerApproximation{}, FullBasisRotation{}} {
		s := scene.New()
		_, _ = s.AddCurve("path", []math.Vec3{{}, {X: 8}})

		opts := DefaultOptions()
		opts.Orienter = orienter
		out := newSolver(t, s, opts).Solve("path", 4)
		if out.Skipped() {
			t.Fatalf("%T: Solve() skipped: %v", orienter, out.Reason)
		}

		for i, f := range out.Frames {
			wantPos := math.Vec3{X: float32(2*i) + 1}
			if !near(f.Position, wantPos, 0.001) {
				t.Errorf("%T: frame %d position = %v, want %v", orienter, i, f.Position, wantPos)
			}
			// +X tangent with a +Y ribbon normal is the rest orientation.
			if !near(f.Orientation, math.Vec3{}, 0.01) {
				t.Errorf("%T: frame %d orientation = %v, want zero", orienter, i, f.Orientation)
			}
		}
	}
}

func TestFullBasisRotationIsConsistent(t *testing.T) {
	s := scene.New()
	_, _ = s.AddCurve("path", []math.Vec3{{}, {X: 2, Z: 1}, {X: 3, Y: 1, Z: 3}, {X: 2, Y: 2, Z: 6}})

	opts := DefaultOptions()
	opts.Orienter = FullBasisRotation{}
	out := newSolver(t, s, opts).Solve("path", 3)
	if out.Skipped() {
		t.Fatalf("Solve() skipped: %v", out.Reason)
	}

	for i, f := range out.Frames {
		p0, _ := s.ControlPoint("path", i)
		p1, _ := s.ControlPoint("path", i+1)
		forward := p1.Sub(p0).Normalize()

		rot := math.EulerXYZ(f.Orientation)
		if got := rot.TransformDirection(math.AxisX); !near(got, forward, 0.01) {
			t.Errorf("frame %d: rotated X = %v, want forward %v", i, got, forward)
		}
	}
}

func TestEulerApproximationAxes(t *testing.T) {
	// Tangent along +Z: Y comes from rotating world X onto +Z.
	b := Basis{Forward: math.AxisZ, Normal: math.Vec3{Y: -1}}
	b.Side = b.Forward.Cross(b.Normal)

	got := EulerApproximation{}.Orient(b)
	if got.Y < -90.01 || got.Y > -89.99 {
		t.Errorf("Orient().Y = %v, want -90", got.Y)
	}
	if got.X < -0.01 || got.X > 0.01 {
		t.Errorf("Orient().X = %v, want 0", got.X)
	}
}

func TestSolveSkips(t *testing.T) {
	tests := []struct {
		name     string
		curve    host.Handle
		points   []math.Vec3
		segments int
	}{
		{"empty name", "", nil, 3},
		{"missing curve", "nope", nil, 3},
		{"single point", "path", []math.Vec3{{X: 1}}, 3},
		{"duplicate points", "path", []math.Vec3{{X: 1}, {X: 1}}, 2},
		{"no segments", "path", []math.Vec3{{}, {X: 1}}, 0},
		{"tangent along sweep", "path", []math.Vec3{{}, {X: 0.5, Z: 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New()
			if tt.points != nil {
				_, _ = s.AddCurve("path", tt.points)
			}

			out := newSolver(t, s, DefaultOptions()).Solve(tt.curve, tt.segments)
			if !out.Skipped() {
				t.Fatalf("Solve() = %d frames, want skipped", len(out.Frames))
			}
			if len(out.Frames) != 0 {
				t.Errorf("skipped outcome carries %d frames", len(out.Frames))
			}
			if !errors.Is(out.Reason, host.ErrCurveUnavailable) && !errors.Is(out.Reason, host.ErrGeometryQuery) {
				t.Errorf("Reason = %v, want curve or geometry failure", out.Reason)
			}
			if s.RibbonCount() != 0 {
				t.Errorf("skipped solve left %d ribbons behind", s.RibbonCount())
			}
		})
	}
}

func TestApply(t *testing.T) {
	s := scene.New()
	_, _ = s.AddGroup("agent")

	frames := []AgentFrame{
		{Time: 0, Position: math.Vec3{X: 1, Y: 2, Z: 3}, Orientation: math.Vec3{X: 10, Y: 20, Z: 30}},
		{Time: 1, Position: math.Vec3{X: 4, Y: 5, Z: 6}},
	}
	n, err := Apply(s, "agent", frames)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if n != 12 {
		t.Errorf("Apply() wrote %d keys, want 12", n)
	}

	keys := s.Keys().Keys("agent", host.RotateY)
	if len(keys) != 2 || keys[0].Value != 20 || keys[1].Time != 1 {
		t.Errorf("rotateY keys = %v", keys)
	}
	keys = s.Keys().Keys("agent", host.TranslateZ)
	if len(keys) != 2 || keys[1].Value != 6 {
		t.Errorf("translateZ keys = %v", keys)
	}

	if _, err := Apply(s, "missing", frames); err == nil {
		t.Error("Apply() to a missing agent should fail")
	}
}

func TestOrienterByName(t *testing.T) {
	if o, err := OrienterByName(""); err != nil || o != (EulerApproximation{}) {
		t.Errorf("OrienterByName(\"\") = %v, %v", o, err)
	}
	if o, err := OrienterByName("basis"); err != nil || o != (FullBasisRotation{}) {
		t.Errorf("OrienterByName(basis) = %v, %v", o, err)
	}
	if _, err := OrienterByName("quaternion"); !errors.Is(err, host.ErrConfiguration) {
		t.Errorf("OrienterByName(quaternion) error = %v, want ErrConfiguration", err)
	}
}
