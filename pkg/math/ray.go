package math

import "math"

// Ray represents a ray with an origin, a direction and the parametric
// interval [TMin, TMax) in which intersections are considered valid.
// Direction does not have to be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a new ray restricted to [tMin, tMax)
func NewRay(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// NewUnboundedRay creates a ray valid over [0, +Inf)
func NewUnboundedRay(origin, direction Vec3) Ray {
	return NewRay(origin, direction, 0, math.Inf(1))
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// WithTMax returns a copy of the ray with its interval shortened to end at t
func (r Ray) WithTMax(t float64) Ray {
	r.TMax = t
	return r
}
