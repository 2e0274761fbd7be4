package api

// RingJSON is a polygon ring as a GeoJSON-style array of [lng,lat] pairs.
type RingJSON [][2]float64

// PolygonJSON is a polygon as an array of rings (first is the outer ring).
type PolygonJSON []RingJSON

// ConfigJSON is the JSON form of planner.Config.
type ConfigJSON struct {
	LaneWidth               float64 `json:"lane_width"`
	ObstacleMargin          float64 `json:"obstacle_margin"`
	MBBOrientationOffsetDeg float64 `json:"mbb_orientation_offset_deg"`
	StartCorner             int     `json:"start_corner"`
}

// PlanRequest is the JSON body for POST /api/v1/plan.
type PlanRequest struct {
	Boundary  PolygonJSON   `json:"boundary"`
	Obstacles []PolygonJSON `json:"obstacles"`
	Config    ConfigJSON    `json:"config"`
}

// PointJSON is a single [lng,lat] coordinate.
type PointJSON [2]float64

// CellJSON is one coverage-grid cell summary.
type CellJSON struct {
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	Visited  string    `json:"visited"`
	Centroid PointJSON `json:"centroid"`
}

// MarkerJSON is one rendered marker feature.
type MarkerJSON struct {
	Tag  string     `json:"tag"`
	Ring RingJSON   `json:"ring,omitempty"`
	Legs []RingJSON `json:"legs,omitempty"`
}

// PlanResponse is the JSON response for a successful plan query.
type PlanResponse struct {
	WorkingBoundary  PolygonJSON   `json:"working_boundary"`
	WorkingObstacles []PolygonJSON `json:"working_obstacles"`
	Hull             RingJSON      `json:"hull"`
	MBB              RingJSON      `json:"mbb"`
	CoverageGrid     []CellJSON    `json:"coverage_grid"`
	Roadmap          []RingJSON    `json:"roadmap"`
	MowPath          RingJSON      `json:"mow_path"`
	Markers          []MarkerJSON  `json:"markers"`
	TravelHeadingDeg float64       `json:"travel_heading_deg"`
	CoverageFraction float64       `json:"coverage_fraction"`
	Warnings         []string      `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats: a summary of
// the most recently computed plan.
type StatsResponse struct {
	NumCells           int     `json:"num_cells"`
	NumRoadmapSegments int     `json:"num_roadmap_segments"`
	NumPathVertices    int     `json:"num_path_vertices"`
	CoverageFraction   float64 `json:"coverage_fraction"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
