package curve

import (
	"fmt"

	"github.com/Faultbox/particle-trail/internal/host"
	"github.com/Faultbox/particle-trail/pkg/math"
)

// Basis is the frame built at one span of the guide curve.
type Basis struct {
	Forward math.Vec3 // unit tangent of the span
	Normal  math.Vec3 // unit normal of the ribbon face
	Side    math.Vec3 // Forward x Normal
}

// Orienter turns a span basis into XYZ Euler angles in degrees.
type Orienter interface {
	Orient(b Basis) math.Vec3
}

// EulerApproximation computes each Euler component on its own: X from the
// rotation taking world Z onto Side, Y from world X onto Forward, Z from
// world Y onto Normal. The triple is not one consistent rotation and strong
// torsion can give visibly inconsistent results; no error is raised for it.
type EulerApproximation struct{}

// Orient implements Orienter.
func (EulerApproximation) Orient(b Basis) math.Vec3 {
	return math.Vec3{
		X: math.AngleBetweenEuler(math.AxisZ, b.Side).X,
		Y: math.AngleBetweenEuler(math.AxisX, b.Forward).Y,
		Z: math.AngleBetweenEuler(math.AxisY, b.Normal).Z,
	}
}

// FullBasisRotation maps world X, Y and Z onto Forward, Normal and Side as a
// single rotation and decomposes it. Normal is re-orthogonalised against
// Forward first. A basis whose Normal is parallel to Forward falls back to
// EulerApproximation.
type FullBasisRotation struct{}

// Orient implements Orienter.
func (FullBasisRotation) Orient(b Basis) math.Vec3 {
	side, ok := b.Forward.Cross(b.Normal).TryNormalize()
	if !ok {
		return EulerApproximation{}.Orient(b)
	}
	forward := b.Forward.Normalize()
	normal := side.Cross(forward)
	return math.FromBasis(forward, normal, side).EulerXYZ()
}

// Orientation strategy names accepted by OrienterByName.
const (
	OrientEuler = "euler"
	OrientBasis = "basis"
)

// OrienterByName returns the strategy for a configuration value.
func OrienterByName(name string) (Orienter, error) {
	switch name {
	case "", OrientEuler:
		return EulerApproximation{}, nil
	case OrientBasis:
		return FullBasisRotation{}, nil
	default:
		return nil, fmt.Errorf("unknown orientation %q: %w", name, host.ErrConfiguration)
	}
}
