// Package particle scatters marker particles over a subset of a mesh's
// vertices.
package particle

import "github.com/Faultbox/particle-trail/internal/host"

// GroupName is the requested name of the group holding a field's markers.
const GroupName = "particlesGrp"

// Field is one density layer of the trail.
//
// Mask has one entry per mesh vertex. Members holds one marker per true
// entry, in vertex order: Members[k] belongs to the k-th true entry of Mask,
// not to vertex k.
type Field struct {
	Members []host.Handle
	Mask    []bool
	Group   host.Handle
	Size    float32
}

// Count returns the number of markers.
func (f *Field) Count() int {
	return len(f.Members)
}

// Present counts the true entries of Mask.
func (f *Field) Present() int {
	n := 0
	for _, present := range f.Mask {
		if present {
			n++
		}
	}
	return n
}

// MemberForVertex returns the marker sitting on vertex v.
func (f *Field) MemberForVertex(v int) (host.Handle, bool) {
	if v < 0 || v >= len(f.Mask) || !f.Mask[v] {
		return "", false
	}
	index := -1
	for j := 0; j <= v; j++ {
		if f.Mask[j] {
			index++
		}
	}
	if index >= len(f.Members) {
		return "", false
	}
	return f.Members[index], true
}
