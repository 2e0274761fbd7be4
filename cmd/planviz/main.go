// Command planviz loads a boundary/obstacle JSON input, runs the planner,
// and renders the result to an SVG file for visual inspection: boundary,
// obstacles, hull, MBB, coverage grid, roadmap and mow path as layered
// shapes.
//
// Load input -> run the planner in-process -> render to a static SVG
// file, since this domain has no external service to compare against.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/grid"
	"github.com/azybler/mowplan/pkg/planner"
)

type ringJSON [][2]float64
type polygonJSON []ringJSON

type inputFile struct {
	Boundary  polygonJSON   `json:"boundary"`
	Obstacles []polygonJSON `json:"obstacles"`
	Config    struct {
		LaneWidth               float64 `json:"lane_width"`
		MBBOrientationOffsetDeg float64 `json:"mbb_orientation_offset_deg"`
		StartCorner             int     `json:"start_corner"`
	} `json:"config"`
}

func main() {
	inPath := flag.String("in", "", "path to input JSON file (boundary, obstacles, config)")
	outPath := flag.String("out", "plan.svg", "path to write the rendered SVG")
	flag.Parse()

	if *inPath == "" {
		log.Fatal("missing -in")
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	var in inputFile
	if err := json.Unmarshal(data, &in); err != nil {
		log.Fatalf("parse input: %v", err)
	}

	boundary, err := toPolygon(in.Boundary)
	if err != nil {
		log.Fatalf("invalid boundary: %v", err)
	}
	obstacles := make([]orb.Polygon, 0, len(in.Obstacles))
	for _, o := range in.Obstacles {
		poly, err := toPolygon(o)
		if err != nil {
			log.Fatalf("invalid obstacle: %v", err)
		}
		obstacles = append(obstacles, poly)
	}

	cfg := planner.Config{
		LaneWidth:               in.Config.LaneWidth,
		MBBOrientationOffsetDeg: in.Config.MBBOrientationOffsetDeg,
		StartCorner:             in.Config.StartCorner,
	}

	result, err := planner.Plan(boundary, obstacles, cfg)
	if err != nil {
		log.Fatalf("plan: %v", err)
	}

	log.Printf("coverage fraction: %.3f, path vertices: %d, roadmap segments: %d",
		result.CoverageFraction, len(result.MowPath), len(result.Roadmap))

	svg := render(result)
	if err := os.WriteFile(*outPath, []byte(svg), 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("wrote %s", *outPath)
}

func toPolygon(p polygonJSON) (orb.Polygon, error) {
	if len(p) == 0 || len(p[0]) < 4 {
		return nil, fmt.Errorf("polygon needs at least one ring of 4 points")
	}
	poly := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			r[j] = orb.Point{pt[0], pt[1]}
		}
		poly[i] = r
	}
	return poly, nil
}

const (
	svgSize   = 800
	svgMargin = 20
)

// render draws the plan result into an SVG document, scaling from the
// boundary's degree-space bounds into a fixed-size canvas.
func render(result *planner.PlanResult) string {
	bound := result.WorkingBoundary.Bound()
	for _, o := range result.WorkingObstacles {
		bound = bound.Union(o.Bound())
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		svgSize, svgSize, svgSize, svgSize)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")

	toXY := func(p orb.Point) (float64, float64) {
		dx := bound.Max[0] - bound.Min[0]
		dy := bound.Max[1] - bound.Min[1]
		if dx == 0 {
			dx = 1
		}
		if dy == 0 {
			dy = 1
		}
		x := svgMargin + (p[0]-bound.Min[0])/dx*(svgSize-2*svgMargin)
		y := svgMargin + (bound.Max[1]-p[1])/dy*(svgSize-2*svgMargin)
		return x, y
	}

	writeRing := func(ring orb.Ring, style string) {
		if len(ring) == 0 {
			return
		}
		b.WriteString(`<polygon points="`)
		for _, p := range ring {
			x, y := toXY(p)
			fmt.Fprintf(&b, "%.2f,%.2f ", x, y)
		}
		fmt.Fprintf(&b, `" style="%s"/>`+"\n", style)
	}

	writeLine := func(ls orb.LineString, style string) {
		if len(ls) < 2 {
			return
		}
		b.WriteString(`<polyline points="`)
		for _, p := range ls {
			x, y := toXY(p)
			fmt.Fprintf(&b, "%.2f,%.2f ", x, y)
		}
		fmt.Fprintf(&b, `" style="%s"/>`+"\n", style)
	}

	writeRing(result.WorkingBoundary[0], "fill:#eef7ee;stroke:#2a7a2a;stroke-width:2")
	for _, o := range result.WorkingObstacles {
		writeRing(o[0], "fill:#f7d9d9;stroke:#a33;stroke-width:1.5")
	}
	writeRing(result.Hull, "fill:none;stroke:#888;stroke-width:1;stroke-dasharray:4,3")
	writeRing(result.MBB.Ring, "fill:none;stroke:#55a;stroke-width:1;stroke-dasharray:6,4")

	for _, c := range result.CoverageGrid.Cells {
		style := "fill:none;stroke:#ddd;stroke-width:0.5"
		if c.Visited == grid.Visited {
			style = "fill:#cfe8ff;stroke:#ddd;stroke-width:0.5"
		} else if c.Visited == grid.Unvisitable {
			style = "fill:#eee;stroke:#ddd;stroke-width:0.5"
		}
		writeRing(c.Poly[0], style)
	}

	for _, seg := range result.Roadmap {
		writeLine(seg, "fill:none;stroke:#c90;stroke-width:1")
	}

	writeLine(result.MowPath, "fill:none;stroke:#06c;stroke-width:2")

	for _, m := range result.Markers {
		if len(m.Ring) > 0 {
			writeRing(m.Ring, "fill:#fff;stroke:#333;stroke-width:1")
		}
		for _, leg := range m.Legs {
			writeLine(leg, "fill:none;stroke:#333;stroke-width:1")
		}
	}

	b.WriteString(`</svg>` + "\n")
	return b.String()
}
