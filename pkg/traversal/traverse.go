package traversal

import (
	"github.com/df07/go-bvh-primitives/pkg/geometry"
	"github.com/df07/go-bvh-primitives/pkg/math"
)

// Hit is the winning intersection of a traversal together with the leaf
// index of the primitive that produced it
type Hit[R geometry.Intersection] struct {
	Index        int
	Intersection R
}

// Distance returns the ray parameter of the hit
func (h Hit[R]) Distance() float64 {
	return h.Intersection.Distance()
}

// Intersect tests every candidate against the ray and returns the closest
// hit. The ray interval is shortened after each hit so that later
// candidates only report closer ones. With anyHit set the first hit found
// is returned without looking at the remaining candidates.
func Intersect[R geometry.Intersection](ray math.Ray, candidates []int, intersector Intersector[R], anyHit bool) (Hit[R], bool) {
	var closest Hit[R]
	hitAnything := false

	for _, index := range candidates {
		intersection, isHit := intersector.Intersect(index, ray)
		if !isHit {
			continue
		}

		closest = Hit[R]{Index: index, Intersection: intersection}
		hitAnything = true
		if anyHit {
			break
		}
		ray = ray.WithTMax(intersection.Distance())
	}

	return closest, hitAnything
}

// Candidates returns the indices of the boxes the ray passes through
// within its interval. It stands in for the leaves a hierarchy traversal
// would visit.
func Candidates(ray math.Ray, boxes []math.AABB) []int {
	var candidates []int
	for i, box := range boxes {
		if box.Hit(ray) {
			candidates = append(candidates, i)
		}
	}
	return candidates
}
