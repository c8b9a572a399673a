package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// ShapeSpec generates mesh vertices procedurally.
type ShapeSpec struct {
	Type     string  `yaml:"type"` // "cube" or "sphere"
	Size     float32 `yaml:"size"`
	Segments int     `yaml:"segments"`
	Rings    int     `yaml:"rings"`
}

// Vertices returns the generated vertex positions.
func (sh *ShapeSpec) Vertices() ([]math.Vec3, error) {
	size := sh.Size
	if size == 0 {
		size = 1
	}
	switch sh.Type {
	case "cube":
		return CubeVertices(size), nil
	case "sphere":
		segments, rings := sh.Segments, sh.Rings
		if segments == 0 {
			segments = 8
		}
		if rings == 0 {
			rings = 6
		}
		return SphereVertices(size/2, segments, rings), nil
	default:
		return nil, fmt.Errorf("unknown shape %q: %w", sh.Type, host.ErrConfiguration)
	}
}

// CubeVertices returns the 8 corners of an origin-centred cube.
func CubeVertices(size float32) []math.Vec3 {
	h := size / 2
	verts := make([]math.Vec3, 0, 8)
	for _, x := range []float32{-h, h} {
		for _, y := range []float32{-h, h} {
			for _, z := range []float32{-h, h} {
				verts = append(verts, math.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return verts
}

// SphereVertices returns a UV sphere: the two poles plus rings-1 latitude
// rings of segments vertices each.
func SphereVertices(radius float32, segments, rings int) []math.Vec3 {
	verts := []math.Vec3{{Y: radius}}
	for r := 1; r < rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		sp, cp := math32.Sincos(phi)
		for seg := 0; seg < segments; seg++ {
			theta := 2 * math32.Pi * float32(seg) / float32(segments)
			st, ct := math32.Sincos(theta)
			verts = append(verts, math.Vec3{X: radius * sp * ct, Y: radius * cp, Z: radius * sp * st})
		}
	}
	return append(verts, math.Vec3{Y: -radius})
}
