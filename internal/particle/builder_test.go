package particle

import (
	"errors"
	"testing"

	"github.com/Faultbox/particle-trail/internal/geometry"
	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/internal/rng"
	"github.com/Faultbox/particle-trail/internal/scene"
	"github.com/Faultbox/particle-trail/pkg/math"
)

func cubeScene(t *testing.T) (*scene.Scene, []math.Vec3) {
	t.Helper()
	s := scene.New()
	if _, err := s.AddMesh("agent", scene.CubeVertices(2)); err != nil {
		t.Fatal(err)
	}
	coords, err := s.WorldVertices("agent", 8)
	if err != nil {
		t.Fatal(err)
	}
	return s, coords
}

func TestBuildFollowsMask(t *testing.T) {
	s, coords := cubeScene(t)
	random := &rng.Sequence{Bools: []bool{true, false, true, true, false, false, false, true}}

	field, err := NewBuilder(s, geometry.NewSampler(s, s), random).Build("agent", coords, 8, 20)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	wantMask := []bool{true, false, true, true, false, false, false, true}
	for i, want := range wantMask {
		if field.Mask[i] != want {
			t.Errorf("Mask[%d] = %v, want %v", i, field.Mask[i], want)
		}
	}
	if field.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", field.Count())
	}

	// Members line up with the present vertices in order.
	present := []int{0, 2, 3, 7}
	for k, v := range present {
		pos, err := s.WorldPosition(field.Members[k])
		if err != nil {
			t.Fatal(err)
		}
		if pos.Distance(coords[v]) > 0.001 {
			t.Errorf("member %d at %v, want vertex %d at %v", k, pos, v, coords[v])
		}
		if s.Node(field.Members[k]).Parent != field.Group {
			t.Errorf("member %d not under group %q", k, field.Group)
		}
	}
}

func TestBuildSizeAndTemplateCleanup(t *testing.T) {
	s, coords := cubeScene(t)
	before := s.NodeCount()

	field, err := NewBuilder(s, geometry.NewSampler(s, s), &rng.Sequence{}).Build("agent", coords, 8, 20)
	if err != nil {
		t.Fatal(err)
	}

	// Diagonal of a 2-unit cube is 2*sqrt(3).
	want := float32(3.4641 / 20)
	if field.Size < want-0.0001 || field.Size > want+0.0001 {
		t.Errorf("Size = %v, want %v", field.Size, want)
	}
	if r := s.Node(field.Members[0]).Radius; r != field.Size {
		t.Errorf("marker radius = %v, want %v", r, field.Size)
	}

	// Clones plus one group, and no template left.
	if got := s.NodeCount() - before; got != 8+1 {
		t.Errorf("Build() added %d nodes, want 9", got)
	}
	for _, name := range s.Nodes() {
		n := s.Node(name)
		if n.Kind == scene.KindSphere && n.Template == "" {
			t.Errorf("template sphere %q was not destroyed", name)
		}
	}
}

func TestBuildMaskMatchesMembers(t *testing.T) {
	s, coords := cubeScene(t)
	builder := NewBuilder(s, geometry.NewSampler(s, s), rng.New(1234))

	for count := 0; count <= 8; count++ {
		field, err := builder.Build("agent", coords[:count], count, 70)
		if err != nil {
			t.Fatalf("Build(count=%d) error = %v", count, err)
		}
		if len(field.Mask) != count {
			t.Errorf("len(Mask) = %d, want %d", len(field.Mask), count)
		}
		if field.Count() != field.Present() {
			t.Errorf("Count() = %d, present entries = %d", field.Count(), field.Present())
		}
	}
}

func TestBuildErrors(t *testing.T) {
	s, coords := cubeScene(t)
	builder := NewBuilder(s, geometry.NewSampler(s, s), &rng.Sequence{})

	if _, err := builder.Build("agent", coords, 7, 20); !errors.Is(err, host.ErrGeometryQuery) {
		t.Errorf("Build(count mismatch) error = %v, want ErrGeometryQuery", err)
	}
	if _, err := builder.Build("agent", coords, 8, 0); !errors.Is(err, host.ErrConfiguration) {
		t.Errorf("Build(ratio 0) error = %v, want ErrConfiguration", err)
	}
	if _, err := builder.Build("ghost", coords, 8, 20); !errors.Is(err, host.ErrGeometryQuery) {
		t.Errorf("Build(ghost) error = %v, want ErrGeometryQuery", err)
	}
}

func TestMemberForVertex(t *testing.T) {
	f := &Field{
		Members: []host.Handle{"A", "B", "C"},
		Mask:    []bool{true, false, true, true},
	}

	tests := []struct {
		vertex int
		want   host.Handle
		ok     bool
	}{
		{0, "A", true},
		{1, "", false},
		{2, "B", true},
		{3, "C", true},
		{4, "", false},
	}
	for _, tt := range tests {
		got, ok := f.MemberForVertex(tt.vertex)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MemberForVertex(%d) = %q, %v, want %q, %v", tt.vertex, got, ok, tt.want, tt.ok)
		}
	}
}
