package geometry

import (
	"math"

	mathpkg "github.com/df07/go-bvh-primitives/pkg/math"
)

// Sphere represents a sphere shape
type Sphere struct {
	Origin mathpkg.Vec3
	Radius float64
}

// SphereIntersection is the hit record produced by Sphere.Intersect
type SphereIntersection struct {
	T      float64      // Parameter t along the ray
	Normal mathpkg.Vec3 // Outward unit normal at the hit point
}

// Distance returns the ray parameter of the hit
func (i SphereIntersection) Distance() float64 {
	return i.T
}

var _ Primitive[SphereIntersection] = Sphere{}

// NewSphere creates a new sphere. The radius is expected to be positive.
func NewSphere(origin mathpkg.Vec3, radius float64) Sphere {
	return Sphere{Origin: origin, Radius: radius}
}

// Center returns the center of the sphere
func (s Sphere) Center() mathpkg.Vec3 {
	return s.Origin
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s Sphere) BoundingBox() mathpkg.AABB {
	radius := mathpkg.Splat(s.Radius)
	return mathpkg.NewAABBFromPoints(
		s.Origin.Subtract(radius),
		s.Origin.Add(radius),
	)
}

// Intersect returns the nearest hit of the ray with the sphere inside
// [ray.TMin, ray.TMax). When the ray starts inside the sphere the exit
// point is returned.
func (s Sphere) Intersect(ray mathpkg.Ray) (SphereIntersection, bool) {
	hit, miss := s.intersect(ray)
	return hit, miss == noMiss
}

// missReason tells apart the two ways a query can come back empty. Callers
// of Intersect only see a false result either way.
type missReason int

const (
	noMiss       missReason = iota
	missLine                // the ray's line does not meet the sphere
	missInterval            // the line meets the sphere outside [TMin, TMax)
)

func (s Sphere) intersect(ray mathpkg.Ray) (SphereIntersection, missReason) {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Origin)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	delta := b*b - 4*a*c
	if delta < 0 {
		return SphereIntersection{}, missLine
	}

	sqrtDelta := math.Sqrt(delta)
	inv := 0.5 / a
	t0 := -(b + sqrtDelta) * inv
	t1 := -(b - sqrtDelta) * inv

	// Smallest root above TMin, falling back to the other one so that a
	// ray starting inside the sphere reports the exit point.
	first, second := t1, t0
	if t0 > ray.TMin {
		first = t0
	}
	if t1 > ray.TMin {
		second = t1
	}
	t := math.Min(first, second)

	if !(t > ray.TMin && t < ray.TMax) {
		return SphereIntersection{}, missInterval
	}

	return SphereIntersection{
		T:      t,
		Normal: ray.At(t).Subtract(s.Origin).Normalize(),
	}, noMiss
}
