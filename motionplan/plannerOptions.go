package motionplan

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/latticeplan/spatialmath"
)

// DefaultGoalRadius is the distance from the goal point within which a node counts as arrived.
const DefaultGoalRadius = 1.5

// PlanRequest is everything a single search needs. Start and Goal are expected to have been
// checked as feasible by the caller already; the planner does not recheck them.
type PlanRequest struct {
	Start spatialmath.Pose
	Goal  r2.Point
	// Clearance is the obstacle inflation, robot radius included, applied to every node.
	Clearance float64
	// SpeedA and SpeedB are the two wheel speeds, in rpm, the primitives are built from.
	SpeedA float64
	SpeedB float64
	// GoalRadius defaults to DefaultGoalRadius when zero.
	GoalRadius float64
}

func (req *PlanRequest) goalRadius() float64 {
	if req.GoalRadius == 0 {
		return DefaultGoalRadius
	}
	return req.GoalRadius
}

func (req *PlanRequest) validate() error {
	if !req.Start.IsFinite() {
		return newBadRequestError("start pose %v is not finite", req.Start)
	}
	if !isFinite(req.Goal.X) || !isFinite(req.Goal.Y) {
		return newBadRequestError("goal point %v is not finite", req.Goal)
	}
	if !isFinite(req.Clearance) || req.Clearance < 0 {
		return newBadRequestError("clearance must be a non-negative number, got %v", req.Clearance)
	}
	if !isFinite(req.SpeedA) || !isFinite(req.SpeedB) {
		return newBadRequestError("wheel speeds must be finite, got %v and %v", req.SpeedA, req.SpeedB)
	}
	if r := req.goalRadius(); !isFinite(r) || r <= 0 {
		return newBadRequestError("goal radius must be positive, got %v", r)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
