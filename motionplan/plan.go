package motionplan

import (
	"github.com/golang/geo/r2"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/latticeplan/spatialmath"
)

// DeltaScale divides pose differences between consecutive waypoints, turning planner units
// into workspace units per unit time.
const DeltaScale = 10.0

// PlanResult is everything one search produced. It is owned by the caller; nothing in it is
// shared with other searches.
type PlanResult struct {
	Status SearchState `json:"status"`
	// Terminal is the arena index of the node that reached the goal, or -1.
	Terminal int      `json:"terminal"`
	Goal     r2.Point `json:"goal"`
	// Nodes is the search arena. Index 0 is the start.
	Nodes []Node `json:"nodes"`
	// Curves holds the feasible substep segments of every accepted expansion, in the order
	// they were accepted.
	Curves []spatialmath.Segment `json:"-"`
	Stats  SearchStats           `json:"stats"`
}

// Waypoint is one pose of a reconstructed path together with its change from the previous
// waypoint, divided by DeltaScale.
type Waypoint struct {
	Pose   spatialmath.Pose `json:"pose"`
	DX     float64          `json:"dx"`
	DY     float64          `json:"dy"`
	DTheta float64          `json:"dtheta"`
}

// TerminalNode returns the goal node of a successful search.
func (r *PlanResult) TerminalNode() (Node, bool) {
	if r.Status != StateSucceeded || r.Terminal < 0 || r.Terminal >= len(r.Nodes) {
		return Node{}, false
	}
	return r.Nodes[r.Terminal], true
}

// Cost returns the path length of a successful search.
func (r *PlanResult) Cost() (float64, error) {
	terminal, ok := r.TerminalNode()
	if !ok {
		return 0, NewPlannerFailedError(r.Stats.Expansions)
	}
	return terminal.Cost2Come, nil
}

// Path walks the parent chain of the terminal node and returns the waypoints from start to
// goal. The start carries zero deltas.
func (r *PlanResult) Path() ([]Waypoint, error) {
	if _, ok := r.TerminalNode(); !ok {
		return nil, NewPlannerFailedError(r.Stats.Expansions)
	}

	var chain []int
	for idx := r.Terminal; idx != noParent; idx = r.Nodes[idx].Parent {
		chain = append(chain, idx)
	}
	chain = lo.Reverse(chain)

	return lo.Map(chain, func(idx, _ int) Waypoint {
		n := r.Nodes[idx]
		if n.IsStart() {
			return Waypoint{Pose: n.Pose}
		}
		parent := r.Nodes[n.Parent]
		return Waypoint{
			Pose:   n.Pose,
			DX:     (n.Pose.X - parent.Pose.X) / DeltaScale,
			DY:     (n.Pose.Y - parent.Pose.Y) / DeltaScale,
			DTheta: (n.Pose.Theta - parent.Pose.Theta) / DeltaScale,
		}
	}), nil
}

// ChordLength returns the summed straight line distance between consecutive waypoints. It is a
// lower bound on the integrated path length.
func ChordLength(path []Waypoint) float64 {
	if len(path) < 2 {
		return 0
	}
	var length float64
	prev := []float64{path[0].Pose.X, path[0].Pose.Y}
	for _, wp := range path[1:] {
		cur := []float64{wp.Pose.X, wp.Pose.Y}
		length += floats.Distance(prev, cur, 2)
		prev = cur
	}
	return length
}
