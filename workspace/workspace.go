// Package workspace models the static planar world a base plans in: a square border plus fixed
// circular and rectangular obstacles, all of which are inflated by the requested clearance.
//
// Points are given in planner units and divided by Scale before being tested, so with the
// default scale of 10 a workspace of half-extent 5 spans [-50, 50] planner units on each axis.
package workspace

import (
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	// DefaultHalfExtent is the half width of the square workspace, in workspace units.
	DefaultHalfExtent = 5.0
	// DefaultScale is the factor between planner units and workspace units.
	DefaultScale = 10.0
)

// Circle is a disc obstacle.
type Circle struct {
	Label  string   `json:"label,omitempty"`
	Center r2.Point `json:"center"`
	Radius float64  `json:"radius"`
}

// contains is strict: a point exactly on the inflated rim is free.
func (c Circle) contains(p r2.Point, margin float64) bool {
	d := p.Sub(c.Center)
	r := c.Radius + margin
	return d.X*d.X+d.Y*d.Y < r*r
}

// Rect is an axis aligned rectangular obstacle.
type Rect struct {
	Label string   `json:"label,omitempty"`
	Min   r2.Point `json:"min"`
	Max   r2.Point `json:"max"`
}

// contains requires the point to be strictly inside all four inflated half-planes.
func (r Rect) contains(p r2.Point, margin float64) bool {
	return p.X > r.Min.X-margin && p.X < r.Max.X+margin &&
		p.Y > r.Min.Y-margin && p.Y < r.Max.Y+margin
}

// Workspace is a square border centered on the origin plus a set of fixed obstacles.
type Workspace struct {
	HalfExtent float64  `json:"half_extent"`
	Scale      float64  `json:"scale"`
	Circles    []Circle `json:"circles,omitempty"`
	Rects      []Rect   `json:"rects,omitempty"`
}

// Default returns the fixed obstacle map: four unit circles and three 1.5 x 1.5 squares inside
// a 10 x 10 border.
func Default() *Workspace {
	return &Workspace{
		HalfExtent: DefaultHalfExtent,
		Scale:      DefaultScale,
		Circles: []Circle{
			{Label: "circle_bottom_left", Center: r2.Point{X: -2, Y: -3}, Radius: 1},
			{Label: "circle_bottom_right", Center: r2.Point{X: 2, Y: -3}, Radius: 1},
			{Label: "circle_top_right", Center: r2.Point{X: 2, Y: 3}, Radius: 1},
			{Label: "circle_center", Center: r2.Point{X: 0, Y: 0}, Radius: 1},
		},
		Rects: []Rect{
			{Label: "square_left", Min: r2.Point{X: -4.75, Y: -0.75}, Max: r2.Point{X: -3.25, Y: 0.75}},
			{Label: "square_left_top", Min: r2.Point{X: -2.75, Y: 2.25}, Max: r2.Point{X: -1.25, Y: 3.75}},
			{Label: "square_right", Min: r2.Point{X: 3.25, Y: -0.75}, Max: r2.Point{X: 4.75, Y: 0.75}},
		},
	}
}

// Open returns a workspace with the default border and no obstacles.
func Open() *Workspace {
	return &Workspace{HalfExtent: DefaultHalfExtent, Scale: DefaultScale}
}

// Feasible reports whether the point, given in planner units, keeps at least clearance away from
// the border and every obstacle. The border and circle tests are strict, so a point lying
// exactly on an inflated boundary is feasible.
func (ws *Workspace) Feasible(p r2.Point, clearance float64) bool {
	return ws.Blocker(p, clearance) == ""
}

// Blocker returns the label of the first obstacle that makes the point infeasible, "border" when
// the border margin is violated, or "" when the point is feasible.
func (ws *Workspace) Blocker(p r2.Point, clearance float64) string {
	p = r2.Point{X: p.X / ws.Scale, Y: p.Y / ws.Scale}
	margin := clearance / ws.Scale

	if p.X < -ws.HalfExtent+margin || p.X > ws.HalfExtent-margin ||
		p.Y < -ws.HalfExtent+margin || p.Y > ws.HalfExtent-margin {
		return "border"
	}
	for i, c := range ws.Circles {
		if c.contains(p, margin) {
			return labelOr(c.Label, "circle", i)
		}
	}
	for i, r := range ws.Rects {
		if r.contains(p, margin) {
			return labelOr(r.Label, "rect", i)
		}
	}
	return ""
}

// Bounds returns the extent of the workspace in planner units.
func (ws *Workspace) Bounds() (lo, hi r2.Point) {
	h := ws.HalfExtent * ws.Scale
	return r2.Point{X: -h, Y: -h}, r2.Point{X: h, Y: h}
}

// Validate checks that the workspace is well formed.
func (ws *Workspace) Validate() error {
	var err error
	if ws.HalfExtent <= 0 {
		err = multierr.Append(err, errors.Errorf("half_extent must be positive, got %v", ws.HalfExtent))
	}
	if ws.Scale <= 0 {
		err = multierr.Append(err, errors.Errorf("scale must be positive, got %v", ws.Scale))
	}
	for i, c := range ws.Circles {
		if c.Radius <= 0 {
			err = multierr.Append(err, errors.Errorf("%s: radius must be positive, got %v", labelOr(c.Label, "circle", i), c.Radius))
		}
	}
	for i, r := range ws.Rects {
		if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
			err = multierr.Append(err, errors.Errorf("%s: min must be below max on both axes", labelOr(r.Label, "rect", i)))
		}
	}
	return err
}

func labelOr(label, kind string, idx int) string {
	if label != "" {
		return label
	}
	return kind + "_" + strconv.Itoa(idx)
}
