// Package host declares the collaborators the trail pipeline drives: the
// geometry provider, the curve tools, the primitive factory, the keyframe
// channel store and the shared time cursor.
//
// Implementations are assumed single-threaded. The pipeline never calls a
// host from more than one goroutine and only one build may be in flight per
// host at a time.
package host

import "github.com/Faultbox/particle-trail/pkg/math"

// Handle identifies a node in the host scene (mesh, curve, face, primitive, group).
type Handle string

// Channel names an animatable attribute of a transform.
type Channel string

// Transform channels written by the pipeline.
const (
	TranslateX Channel = "translateX"
	TranslateY Channel = "translateY"
	TranslateZ Channel = "translateZ"
	RotateX    Channel = "rotateX"
	RotateY    Channel = "rotateY"
	RotateZ    Channel = "rotateZ"
)

// TranslateChannels lists the translation channels in X, Y, Z order.
var TranslateChannels = [3]Channel{TranslateX, TranslateY, TranslateZ}

// RotateChannels lists the rotation channels in X, Y, Z order.
var RotateChannels = [3]Channel{RotateX, RotateY, RotateZ}

// Geometry answers world-space queries against the scene at the current time.
type Geometry interface {
	// ResolveMesh finds the first mesh under the named object and returns the
	// transform that owns it together with its vertex count.
	ResolveMesh(object Handle) (mesh Handle, vertexCount int, err error)
	// BoundingBoxDiagonal returns the length of the world bounding box diagonal.
	BoundingBoxDiagonal(mesh Handle) (float32, error)
	// WorldVertices returns the first count vertices of the mesh in world space.
	WorldVertices(mesh Handle, count int) ([]math.Vec3, error)
	// FaceNormal returns the unit normal of a face.
	FaceNormal(face Handle) (math.Vec3, error)
}

// TimeCursor is the host's global current-time setting. Geometry queries
// observe whatever frame the cursor was last advanced to.
type TimeCursor interface {
	AdvanceTo(frame int) error
	CurrentFrame() int
}

// Curves rebuilds guide curves and sweeps them into ribbon surfaces.
type Curves interface {
	// Resample rebuilds the curve as segments uniform linear spans, giving it
	// segments+1 control points.
	Resample(curve Handle, segments int) error
	// ControlPoint returns control point i in world space.
	ControlPoint(curve Handle, i int) (math.Vec3, error)
	// ExtrudeRibbon sweeps the curve along direction by length and returns
	// the temporary surface and its faces, one per span.
	ExtrudeRibbon(curve Handle, direction math.Vec3, length float32) (ribbon Handle, faces []Handle, err error)
}

// Primitives creates and removes marker geometry.
type Primitives interface {
	NewSphere(radius float32) (Handle, error)
	CloneAt(template Handle, position math.Vec3) (Handle, error)
	Group(name string, members []Handle) (Handle, error)
	Destroy(h Handle) error
}

// KeyframeSink accepts (target, time, channel, value) keys.
type KeyframeSink interface {
	SetKeyframe(target Handle, time int, channel Channel, value float32) error
}

// Host bundles every collaborator.
type Host interface {
	Geometry
	TimeCursor
	Curves
	Primitives
	KeyframeSink
}

// SetTranslate keys all three translation channels of target at time.
func SetTranslate(sink KeyframeSink, target Handle, time int, v math.Vec3) error {
	for i, value := range v.Array() {
		if err := sink.SetKeyframe(target, time, TranslateChannels[i], value); err != nil {
			return err
		}
	}
	return nil
}

// SetRotate keys all three rotation channels of target at time, in degrees.
func SetRotate(sink KeyframeSink, target Handle, time int, deg math.Vec3) error {
	for i, value := range deg.Array() {
		if err := sink.SetKeyframe(target, time, RotateChannels[i], value); err != nil {
			return err
		}
	}
	return nil
}
