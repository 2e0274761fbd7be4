package api

import (
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"
	"sync"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/grid"
	"github.com/azybler/mowplan/pkg/planner"
)

// Handlers holds the HTTP handlers and the last plan's stats for
// GET /api/v1/stats.
type Handlers struct {
	mu    sync.Mutex // guards stats across concurrent requests
	stats StatsResponse
}

// NewHandlers creates handlers with zeroed stats.
func NewHandlers() *Handlers {
	return &Handlers{}
}

// HandlePlan handles POST /api/v1/plan.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	boundary, err := toPolygon(req.Boundary)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "boundary")
		return
	}
	obstacles := make([]orb.Polygon, 0, len(req.Obstacles))
	for _, o := range req.Obstacles {
		poly, err := toPolygon(o)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "obstacles")
			return
		}
		obstacles = append(obstacles, poly)
	}

	cfg := planner.Config{
		LaneWidth:               req.Config.LaneWidth,
		ObstacleMargin:          req.Config.ObstacleMargin,
		MBBOrientationOffsetDeg: req.Config.MBBOrientationOffsetDeg,
		StartCorner:             req.Config.StartCorner,
	}
	if cfg.LaneWidth <= 0.1 {
		writeError(w, http.StatusBadRequest, "invalid_config", "lane_width")
		return
	}

	result, err := planner.Plan(boundary, obstacles, cfg)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrEmptyBoundary):
			writeError(w, http.StatusUnprocessableEntity, "empty_boundary", "")
		case errors.Is(err, planner.ErrDegenerateHull):
			writeError(w, http.StatusUnprocessableEntity, "degenerate_hull", "")
		case errors.Is(err, planner.ErrNoPath):
			writeError(w, http.StatusUnprocessableEntity, "no_path", "")
		default:
			writeError(w, http.StatusInternalServerError, "geometry_precision", "")
		}
		return
	}

	h.mu.Lock()
	h.stats = StatsResponse{
		NumCells:           len(result.CoverageGrid.Cells),
		NumRoadmapSegments: len(result.Roadmap),
		NumPathVertices:    len(result.MowPath),
		CoverageFraction:   result.CoverageFraction,
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPlanResponse(result))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	stats := h.stats
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func toPolygon(p PolygonJSON) (orb.Polygon, error) {
	if len(p) == 0 || len(p[0]) < 4 {
		return nil, errors.New("polygon needs at least one ring of 4 points")
	}
	poly := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			if math.IsNaN(pt[0]) || math.IsNaN(pt[1]) || math.IsInf(pt[0], 0) || math.IsInf(pt[1], 0) {
				return nil, errors.New("coordinates must be finite")
			}
			r[j] = orb.Point{pt[0], pt[1]}
		}
		poly[i] = r
	}
	return poly, nil
}

func fromPolygon(p orb.Polygon) PolygonJSON {
	out := make(PolygonJSON, len(p))
	for i, ring := range p {
		out[i] = fromRing(ring)
	}
	return out
}

func fromRing(ring orb.Ring) RingJSON {
	out := make(RingJSON, len(ring))
	for i, p := range ring {
		out[i] = [2]float64{p[0], p[1]}
	}
	return out
}

func fromLineString(ls orb.LineString) RingJSON {
	return fromRing(orb.Ring(ls))
}

func visitStateName(v grid.VisitState) string {
	switch v {
	case grid.Visited:
		return "visited"
	case grid.Unvisitable:
		return "unvisitable"
	default:
		return "unvisited"
	}
}

func toPlanResponse(result *planner.PlanResult) PlanResponse {
	obstacles := make([]PolygonJSON, len(result.WorkingObstacles))
	for i, o := range result.WorkingObstacles {
		obstacles[i] = fromPolygon(o)
	}

	cells := make([]CellJSON, len(result.CoverageGrid.Cells))
	for i, c := range result.CoverageGrid.Cells {
		cells[i] = CellJSON{
			Row:      c.Row,
			Col:      c.Col,
			Visited:  visitStateName(c.Visited),
			Centroid: PointJSON{c.Centroid[0], c.Centroid[1]},
		}
	}

	roadmap := make([]RingJSON, len(result.Roadmap))
	for i, s := range result.Roadmap {
		roadmap[i] = fromLineString(s)
	}

	ms := make([]MarkerJSON, len(result.Markers))
	for i, m := range result.Markers {
		mj := MarkerJSON{Tag: string(m.Tag)}
		if len(m.Ring) > 0 {
			mj.Ring = fromRing(m.Ring)
		}
		for _, leg := range m.Legs {
			mj.Legs = append(mj.Legs, fromLineString(leg))
		}
		ms[i] = mj
	}

	var warnings []string
	for _, w := range result.Warnings {
		warnings = append(warnings, w.Error())
	}

	return PlanResponse{
		WorkingBoundary:  fromPolygon(result.WorkingBoundary),
		WorkingObstacles: obstacles,
		Hull:             fromRing(result.Hull),
		MBB:              fromRing(result.MBB.Ring),
		CoverageGrid:     cells,
		Roadmap:          roadmap,
		MowPath:          fromLineString(result.MowPath),
		Markers:          ms,
		TravelHeadingDeg: result.TravelHeadingDeg,
		CoverageFraction: result.CoverageFraction,
		Warnings:         warnings,
	}
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
