package geometry

import (
	"math"
	"sync"
	"testing"

	mathpkg "github.com/df07/go-bvh-primitives/pkg/math"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func requireVecInDelta(t *testing.T, expected, actual mathpkg.Vec3) {
	t.Helper()
	require.InDelta(t, expected.X, actual.X, tolerance, "x of %v", actual)
	require.InDelta(t, expected.Y, actual.Y, tolerance, "y of %v", actual)
	require.InDelta(t, expected.Z, actual.Z, tolerance, "z of %v", actual)
}

func TestSphere_Intersect(t *testing.T) {
	unit := NewSphere(mathpkg.NewVec3(0, 0, 0), 1)

	tests := []struct {
		name           string
		sphere         Sphere
		ray            mathpkg.Ray
		expectedHit    bool
		expectedMiss   missReason
		expectedT      float64
		expectedNormal mathpkg.Vec3
	}{
		{
			name:           "entry point from outside",
			sphere:         unit,
			ray:            mathpkg.NewRay(mathpkg.NewVec3(0, 0, -5), mathpkg.NewVec3(0, 0, 1), 0, 10),
			expectedHit:    true,
			expectedT:      4,
			expectedNormal: mathpkg.NewVec3(0, 0, -1),
		},
		{
			name:         "hit beyond tmax",
			sphere:       unit,
			ray:          mathpkg.NewRay(mathpkg.NewVec3(0, 0, -5), mathpkg.NewVec3(0, 0, 1), 0, 3),
			expectedMiss: missInterval,
		},
		{
			name:           "exit point from inside",
			sphere:         unit,
			ray:            mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, 1), 0, 10),
			expectedHit:    true,
			expectedT:      1,
			expectedNormal: mathpkg.NewVec3(0, 0, 1),
		},
		{
			name:           "exit point when tmin skips the entry",
			sphere:         unit,
			ray:            mathpkg.NewRay(mathpkg.NewVec3(0, 0, -5), mathpkg.NewVec3(0, 0, 1), 4.5, 10),
			expectedHit:    true,
			expectedT:      6,
			expectedNormal: mathpkg.NewVec3(0, 0, 1),
		},
		{
			name:         "line misses the sphere",
			sphere:       unit,
			ray:          mathpkg.NewRay(mathpkg.NewVec3(2, 0, -5), mathpkg.NewVec3(0, 0, 1), 0, 10),
			expectedMiss: missLine,
		},
		{
			name:         "sphere behind the origin",
			sphere:       unit,
			ray:          mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, 1), 0, 10),
			expectedMiss: missInterval,
		},
		{
			name:           "tangent ray",
			sphere:         unit,
			ray:            mathpkg.NewRay(mathpkg.NewVec3(1, 0, -5), mathpkg.NewVec3(0, 0, 1), 0, 10),
			expectedHit:    true,
			expectedT:      5,
			expectedNormal: mathpkg.NewVec3(1, 0, 0),
		},
		{
			name:         "tangent point beyond tmax",
			sphere:       unit,
			ray:          mathpkg.NewRay(mathpkg.NewVec3(1, 0, -5), mathpkg.NewVec3(0, 0, 1), 0, 5),
			expectedMiss: missInterval,
		},
		{
			name:           "origin on the surface",
			sphere:         unit,
			ray:            mathpkg.NewRay(mathpkg.NewVec3(0, 0, -1), mathpkg.NewVec3(0, 0, 1), 0, 10),
			expectedHit:    true,
			expectedT:      2,
			expectedNormal: mathpkg.NewVec3(0, 0, 1),
		},
		{
			name:           "non unit direction",
			sphere:         unit,
			ray:            mathpkg.NewRay(mathpkg.NewVec3(0, 0, -5), mathpkg.NewVec3(0, 0, 2), 0, 10),
			expectedHit:    true,
			expectedT:      2,
			expectedNormal: mathpkg.NewVec3(0, 0, -1),
		},
		{
			name:           "offset sphere",
			sphere:         NewSphere(mathpkg.NewVec3(3, 0, 0), 2),
			ray:            mathpkg.NewUnboundedRay(mathpkg.NewVec3(-2, 0, 0), mathpkg.NewVec3(1, 0, 0)),
			expectedHit:    true,
			expectedT:      3,
			expectedNormal: mathpkg.NewVec3(-1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.sphere.Intersect(tt.ray)
			require.Equal(t, tt.expectedHit, isHit)

			_, miss := tt.sphere.intersect(tt.ray)
			require.Equal(t, tt.expectedMiss, miss)

			if !tt.expectedHit {
				return
			}
			require.InDelta(t, tt.expectedT, hit.T, tolerance)
			require.Equal(t, hit.T, hit.Distance())
			requireVecInDelta(t, tt.expectedNormal, hit.Normal)
		})
	}
}

func TestSphere_Intersect_NormalPointsOutward(t *testing.T) {
	sphere := NewSphere(mathpkg.NewVec3(1, -2, 0.5), 1.5)
	origin := mathpkg.NewVec3(-4, 3, 7)

	// Aim at a point slightly off center so the hit is not axis aligned
	target := sphere.Origin.Add(mathpkg.NewVec3(0.3, -0.2, 0.4))
	ray := mathpkg.NewUnboundedRay(origin, target.Subtract(origin).Multiply(0.37))

	hit, isHit := sphere.Intersect(ray)
	require.True(t, isHit)

	point := ray.At(hit.T)
	toPoint := point.Subtract(sphere.Origin)

	require.InDelta(t, 1.0, hit.Normal.Length(), tolerance)
	require.InDelta(t, sphere.Radius, hit.Normal.Dot(toPoint), 1e-6)
	require.InDelta(t, sphere.Radius, toPoint.Length(), 1e-6)

	// Restarting at the entry reports the exit point
	inside := mathpkg.NewRay(ray.Origin, ray.Direction, hit.T, math.Inf(1))
	exit, isHit := sphere.Intersect(inside)
	require.True(t, isHit)
	require.Greater(t, exit.T, hit.T)
	require.InDelta(t, 1.0, exit.Normal.Length(), tolerance)
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(mathpkg.NewVec3(1, 2, 3), 2)

	box := sphere.BoundingBox()
	require.Equal(t, mathpkg.NewAABB(mathpkg.NewVec3(-1, 0, 1), mathpkg.NewVec3(3, 4, 5)), box)
	require.Equal(t, sphere.Center(), box.Min.Add(box.Max).Multiply(0.5))
}

func TestSphere_CenterUnchangedByQueries(t *testing.T) {
	origin := mathpkg.NewVec3(0.25, -1, 8)
	sphere := NewSphere(origin, 0.75)

	for i := 0; i < 100; i++ {
		ray := mathpkg.NewUnboundedRay(mathpkg.NewVec3(float64(i), 0, 0), mathpkg.NewVec3(-1, 0, 1))
		sphere.Intersect(ray)
	}

	require.Equal(t, origin, sphere.Center())
	require.Equal(t, 0.75, sphere.Radius)
}

func TestSphere_Intersect_Concurrent(t *testing.T) {
	sphere := NewSphere(mathpkg.NewVec3(0, 0, 0), 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(offset float64) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, -5-offset), mathpkg.NewVec3(0, 0, 1), 0, 100)
				hit, isHit := sphere.Intersect(ray)
				if !isHit || math.Abs(hit.T-(4+offset)) > tolerance {
					t.Errorf("goroutine %v: unexpected result %v %v", offset, hit, isHit)
					return
				}
			}
		}(float64(i))
	}
	wg.Wait()
}
