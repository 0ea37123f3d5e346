package geometry

import "github.com/df07/go-bvh-primitives/pkg/math"

// Intersection is the result of a successful primitive query. Distance is
// the ray parameter of the hit, which traversal code uses to rank hits
// coming from different primitive types.
type Intersection interface {
	Distance() float64
}

// Primitive is what a shape must provide to be organized by a bounding
// volume hierarchy and queried by its traversal.
//
// Implementations must be pure: none of the methods may mutate the
// primitive or depend on mutable shared state, so that the same primitive
// can be queried from many goroutines at once.
type Primitive[I Intersection] interface {
	// Center returns the representative point used to partition
	// primitives during construction.
	Center() math.Vec3

	// BoundingBox returns an axis-aligned box that contains the primitive.
	BoundingBox() math.AABB

	// Intersect returns the nearest hit inside [ray.TMin, ray.TMax).
	// The boolean is false when there is no such hit, in which case the
	// returned intersection must be ignored.
	Intersect(ray math.Ray) (I, bool)
}
