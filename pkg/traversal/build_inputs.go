package traversal

import (
	"github.com/df07/go-bvh-primitives/pkg/geometry"
	"github.com/df07/go-bvh-primitives/pkg/math"
)

// BuildInputs holds what a hierarchy builder needs from the primitives:
// one bounding box and one center per primitive, in primitive order.
type BuildInputs struct {
	BoundingBoxes []math.AABB
	Centers       []math.Vec3
	Bounds        math.AABB // Union of all bounding boxes
}

// CollectBuildInputs queries every primitive once for its bounding box and
// center
func CollectBuildInputs[I geometry.Intersection, P geometry.Primitive[I]](primitives []P) BuildInputs {
	inputs := BuildInputs{
		BoundingBoxes: make([]math.AABB, len(primitives)),
		Centers:       make([]math.Vec3, len(primitives)),
	}

	for i, primitive := range primitives {
		box := primitive.BoundingBox()
		inputs.BoundingBoxes[i] = box
		inputs.Centers[i] = primitive.Center()

		if i == 0 {
			inputs.Bounds = box
		} else {
			inputs.Bounds = inputs.Bounds.Union(box)
		}
	}

	return inputs
}
