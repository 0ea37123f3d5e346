package loaders

import (
	"io"
	stdmath "math"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-bvh-primitives/pkg/geometry"
	"github.com/df07/go-bvh-primitives/pkg/math"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeInvalidSphere = "invalid-sphere"
	ErrTypeInvalidRay    = "invalid-ray"
)

// Scene is the content of a scene file: spheres to intersect and rays to
// cast against them
type Scene struct {
	Spheres []geometry.Sphere
	Rays    []math.Ray
}

type sceneFile struct {
	Spheres []sphereEntry `json:"spheres"`
	Rays    []rayEntry    `json:"rays"`
}

type sphereEntry struct {
	Center []float64 `json:"center"`
	Radius float64   `json:"radius"`
}

type rayEntry struct {
	Origin    []float64 `json:"origin"`
	Direction []float64 `json:"direction"`
	TMin      float64   `json:"tmin"`
	TMax      *float64  `json:"tmax"` // +Inf when omitted
}

// LoadScene reads and validates a JSON scene file
func LoadScene(filename string) (*Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.New("opening scene file failed").
			WithTag("filename", filename).
			Wrap(err)
	}
	defer file.Close()

	scene, err := ParseScene(file)
	if err != nil {
		return nil, errors.New("loading scene failed").
			WithTag("filename", filename).
			Wrap(err)
	}
	return scene, nil
}

// ParseScene decodes and validates a JSON scene document.
//
// Vectors must have exactly three components. Spheres must have a positive
// radius and rays a non-zero direction with tmin <= tmax. Sphere itself does not check these, so they are enforced
// here where the data enters the program.
func ParseScene(r io.Reader) (*Scene, error) {
	var file sceneFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.New("decoding scene failed").Wrap(err)
	}

	scene := &Scene{
		Spheres: make([]geometry.Sphere, 0, len(file.Spheres)),
		Rays:    make([]math.Ray, 0, len(file.Rays)),
	}

	for i, entry := range file.Spheres {
		center, ok := toVec3(entry.Center)
		if !ok {
			return nil, errors.New("sphere center must have 3 components").
				WithType(ErrTypeInvalidSphere).
				WithTag("index", i).
				WithTag("components", len(entry.Center))
		}
		if !(entry.Radius > 0) {
			return nil, errors.New("sphere radius must be positive").
				WithType(ErrTypeInvalidSphere).
				WithTag("index", i).
				WithTag("radius", entry.Radius)
		}
		scene.Spheres = append(scene.Spheres, geometry.NewSphere(center, entry.Radius))
	}

	for i, entry := range file.Rays {
		tMax := stdmath.Inf(1)
		if entry.TMax != nil {
			tMax = *entry.TMax
		}

		origin, ok := toVec3(entry.Origin)
		if !ok {
			return nil, errors.New("ray origin must have 3 components").
				WithType(ErrTypeInvalidRay).
				WithTag("index", i).
				WithTag("components", len(entry.Origin))
		}
		direction, ok := toVec3(entry.Direction)
		if !ok {
			return nil, errors.New("ray direction must have 3 components").
				WithType(ErrTypeInvalidRay).
				WithTag("index", i).
				WithTag("components", len(entry.Direction))
		}
		if direction.LengthSquared() == 0 {
			return nil, errors.New("ray direction must not be zero").
				WithType(ErrTypeInvalidRay).
				WithTag("index", i)
		}
		if entry.TMin > tMax {
			return nil, errors.New("ray tmin must not exceed tmax").
				WithType(ErrTypeInvalidRay).
				WithTag("index", i).
				WithTag("tmin", entry.TMin).
				WithTag("tmax", tMax)
		}

		scene.Rays = append(scene.Rays, math.NewRay(origin, direction, entry.TMin, tMax))
	}

	return scene, nil
}

func toVec3(v []float64) (math.Vec3, bool) {
	if len(v) != 3 {
		return math.Vec3{}, false
	}
	return math.NewVec3(v[0], v[1], v[2]), true
}
