package traversal

import (
	"github.com/df07/go-bvh-primitives/pkg/geometry"
	"github.com/df07/go-bvh-primitives/pkg/math"
)

// Intersector is the proxy a traversal loop uses to test a primitive
// referenced by a hierarchy leaf. The hierarchy only knows primitive
// indices; the intersector knows where the primitives live.
type Intersector[R geometry.Intersection] interface {
	Intersect(index int, ray math.Ray) (R, bool)
}

// PrimitiveIntersector intersects primitives stored in a slice. When
// PrimitiveIndices is set, leaf indices are first mapped through it, which
// is how a hierarchy that reorders its primitive references is consumed
// without reordering the primitives themselves.
type PrimitiveIntersector[I geometry.Intersection, P geometry.Primitive[I]] struct {
	Primitives       []P
	PrimitiveIndices []int
}

// NewPrimitiveIntersector creates an intersector over primitives. indices
// may be nil, in which case leaf indices address primitives directly.
func NewPrimitiveIntersector[I geometry.Intersection, P geometry.Primitive[I]](primitives []P, indices []int) *PrimitiveIntersector[I, P] {
	return &PrimitiveIntersector[I, P]{
		Primitives:       primitives,
		PrimitiveIndices: indices,
	}
}

// Intersect tests the primitive referenced by index against the ray.
// An out of range index panics like a slice access.
func (pi *PrimitiveIntersector[I, P]) Intersect(index int, ray math.Ray) (I, bool) {
	return pi.Primitives[pi.Resolve(index)].Intersect(ray)
}

// Resolve maps a leaf index to a position in Primitives
func (pi *PrimitiveIntersector[I, P]) Resolve(index int) int {
	if pi.PrimitiveIndices != nil {
		return pi.PrimitiveIndices[index]
	}
	return index
}
