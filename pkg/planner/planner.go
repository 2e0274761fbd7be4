// Package planner orchestrates the full mowing-plan pipeline of spec.md
// §2/§6: boundary conditioning, convex hull, minimum bounding box,
// coverage grid, Voronoi roadmap, Boustrophedon sweep and marker
// placement, returning a PlanResult or a sentinel error.
//
// A single top-level entry point runs the pipeline in a fixed order and
// wraps each stage's failure into one of this package's sentinel errors
// for the caller, rather than panicking or returning ad hoc strings.
package planner

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/boundary"
	"github.com/azybler/mowplan/pkg/grid"
	"github.com/azybler/mowplan/pkg/hull"
	"github.com/azybler/mowplan/pkg/markers"
	"github.com/azybler/mowplan/pkg/router"
	"github.com/azybler/mowplan/pkg/sweep"
	"github.com/azybler/mowplan/pkg/voronoi"
)

// Sentinel errors, per spec.md §7. ErrEmptyBoundary, ErrDegenerateHull and
// ErrNoPath are the originating packages' own error values, so errors.Is
// matches either this package's name or the originating one.
var (
	ErrEmptyBoundary     = boundary.ErrEmptyBoundary
	ErrDegenerateHull    = hull.ErrDegenerateHull
	ErrEmptyRoadmap      = errors.New("planner: empty roadmap")
	ErrNoPath            = router.ErrNoPath
	ErrGeometryPrecision = errors.New("planner: geometry precision failure")
)

// Config is the plan's tunable parameters, per spec.md §6.
type Config struct {
	LaneWidth               float64 // meters, > 0.1
	ObstacleMargin          float64 // meters, >= 0; reserved, unused by the core pipeline
	MBBOrientationOffsetDeg float64 // [0,180]
	StartCorner             int     // {0,1,2,3}
}

// PlanResult is the full derived state of one plan call, per spec.md §6.
type PlanResult struct {
	WorkingBoundary  orb.Polygon
	WorkingObstacles []orb.Polygon
	Hull             orb.Ring
	MBB              hull.MBB
	CoverageGrid     *grid.Grid
	Roadmap          []orb.LineString
	MowPath          orb.LineString
	Markers          []markers.Marker
	TravelHeadingDeg float64
	CoverageFraction float64

	// Warnings holds non-fatal error kinds raised during this plan, per
	// spec.md §7's propagation policy ("surfaced as a structured result"
	// rather than failing the call). Currently only ErrEmptyRoadmap.
	Warnings []error
}

// maxPasses bounds the sweep outer loop so a stalled pass (no vertex
// growth, coverage short of the 0.99 target) cannot loop forever.
const maxPasses = 1000

// Plan runs the full pipeline of spec.md §2 over rawBoundary/rawObstacles
// with cfg, in order: hull -> MBB -> grid -> roadmap -> sweep (which calls
// the router, which reads the roadmap).
func Plan(rawBoundary orb.Polygon, rawObstacles []orb.Polygon, cfg Config) (*PlanResult, error) {
	conditioned, err := boundary.Condition(rawBoundary, rawObstacles)
	if err != nil {
		if errors.Is(err, boundary.ErrEmptyBoundary) {
			return nil, ErrEmptyBoundary
		}
		return nil, fmt.Errorf("%w: %v", ErrGeometryPrecision, err)
	}

	hullRing, err := hull.ConvexHull(conditioned.Boundary)
	if err != nil {
		if errors.Is(err, hull.ErrDegenerateHull) {
			return nil, ErrDegenerateHull
		}
		return nil, fmt.Errorf("%w: %v", ErrGeometryPrecision, err)
	}

	mbb, err := hull.MinimumBoundingBox(hullRing, cfg.MBBOrientationOffsetDeg)
	if err != nil {
		return nil, ErrDegenerateHull
	}

	g := grid.Build(mbb.Ring, cfg.LaneWidth, cfg.StartCorner, conditioned.Boundary, conditioned.Obstacles)

	segments, err := voronoi.BuildRoadmap(conditioned.Boundary, conditioned.Obstacles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeometryPrecision, err)
	}
	var warnings []error
	if len(segments) == 0 {
		// Not fatal: the router may still succeed via a direct line
		// between query points (spec.md §7).
		warnings = append(warnings, ErrEmptyRoadmap)
	}

	forbid := router.Forbidden{Boundary: conditioned.Boundary, Obstacles: conditioned.Obstacles}

	var path orb.LineString
	prevLen := -1
	for i := 0; i < maxPasses; i++ {
		path = sweep.Pass(path, g, segments, forbid, cfg.LaneWidth)
		if g.CoverageFraction() >= 0.99 {
			break
		}
		if len(path) == prevLen {
			break
		}
		prevLen = len(path)
	}

	path = sweep.Prune(path, cfg.LaneWidth)

	return &PlanResult{
		WorkingBoundary:  conditioned.Boundary,
		WorkingObstacles: conditioned.Obstacles,
		Hull:             hullRing,
		MBB:              mbb,
		CoverageGrid:     g,
		Roadmap:          segments,
		MowPath:          path,
		Markers:          markers.Build(path, cfg.LaneWidth),
		TravelHeadingDeg: g.TravelHeadingDeg(),
		CoverageFraction: g.CoverageFraction(),
		Warnings:         warnings,
	}, nil
}
