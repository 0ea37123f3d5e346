package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-bvh-primitives/pkg/geometry"
	"github.com/df07/go-bvh-primitives/pkg/loaders"
	"github.com/df07/go-bvh-primitives/pkg/math"
	"github.com/df07/go-bvh-primitives/pkg/traversal"
	"github.com/segmentio/encoding/json"
)

type config struct {
	Scene     string `cli:""        env:"RAYCAST_SCENE"     help:"Path to the JSON scene file."`
	AnyHit    bool   `cli:""        env:"RAYCAST_ANY_HIT"   help:"Stop at the first hit instead of the closest one."`
	Cull      bool   `cli:",hidden" env:"RAYCAST_CULL"      help:"Skip spheres whose bounding box the ray misses."`
	LogLevel  string `cli:""        env:"RAYCAST_LOG_LEVEL" help:"Log level (debug|info|warning|error)."`
	LogIndent bool   `cli:""        env:"RAYCAST_LOG_INDENT" help:"Indent logs."`
	Help      bool   `cli:""        env:"-"                 help:"Show help."`
}

// rayResult is the outcome of casting one ray
type rayResult struct {
	Ray    int
	Hit    bool
	Sphere int
	T      float64
	Normal math.Vec3
}

// summary aggregates the results of a run
type summary struct {
	Rays    int
	Hits    int
	Elapsed time.Duration
}

func main() {
	conf := config{
		LogLevel: logs.InfoLevel.String(),
		Cull:     true,
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Casts the rays of a scene file against its spheres.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if conf.Scene == "" {
		logs.Fatal(errors.New("no scene file given"))
	}

	scene, err := loaders.LoadScene(conf.Scene)
	if err != nil {
		logs.Fatal(err)
	}

	s, err := castScene(ctx, scene, conf, logResult)
	if err != nil {
		logs.Fatal(err)
	}

	logs.WithTag("rays", s.Rays).
		WithTag("hits", s.Hits).
		WithTag("elapsed", s.Elapsed.String()).
		Info("raycast completed")
}

// castScene casts every ray of the scene against its spheres and reports
// each result to emit
func castScene(ctx context.Context, scene *loaders.Scene, conf config, emit func(rayResult)) (summary, error) {
	start := time.Now()

	inputs := traversal.CollectBuildInputs[geometry.SphereIntersection](scene.Spheres)
	intersector := traversal.NewPrimitiveIntersector[geometry.SphereIntersection](scene.Spheres, nil)

	all := make([]int, len(scene.Spheres))
	for i := range all {
		all[i] = i
	}

	logs.WithTag("spheres", len(scene.Spheres)).
		WithTag("rays", len(scene.Rays)).
		WithTag("bounds", fmt.Sprintf("%v", inputs.Bounds)).
		Debug("scene loaded")

	s := summary{}
	for i, ray := range scene.Rays {
		if err := ctx.Err(); err != nil {
			return s, errors.New("raycast interrupted").
				WithTag("ray", i).
				Wrap(err)
		}

		candidates := all
		if conf.Cull {
			candidates = traversal.Candidates(ray, inputs.BoundingBoxes)
		}

		result := rayResult{Ray: i, Sphere: -1}
		if hit, isHit := traversal.Intersect[geometry.SphereIntersection](ray, candidates, intersector, conf.AnyHit); isHit {
			result.Hit = true
			result.Sphere = intersector.Resolve(hit.Index)
			result.T = hit.Distance()
			result.Normal = hit.Intersection.Normal
			s.Hits++
		}

		s.Rays++
		emit(result)
	}

	s.Elapsed = time.Since(start)
	return s, nil
}

func logResult(r rayResult) {
	entry := logs.WithTag("ray", r.Ray).WithTag("hit", r.Hit)
	if r.Hit {
		entry = entry.
			WithTag("sphere", r.Sphere).
			WithTag("t", r.T).
			WithTag("normal", []float64{r.Normal.X, r.Normal.Y, r.Normal.Z})
	}
	entry.Info("ray cast")
}
