// Package config reads plan requests from disk and checks them against a workspace before any
// search is started.
package config

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/latticeplan/kinematics"
	"go.viam.com/latticeplan/motionplan"
	"go.viam.com/latticeplan/spatialmath"
	"go.viam.com/latticeplan/workspace"
)

var (
	// ErrInvalidStart is returned when the start point does not clear the inflated obstacles.
	ErrInvalidStart = errors.New("start point is not feasible")
	// ErrInvalidGoal is returned when the goal point does not clear the inflated obstacles.
	ErrInvalidGoal = errors.New("goal point is not feasible")
)

const (
	// UserScale converts user units to planner units.
	UserScale = 10.0
	// UserClearanceOffset is added to the scaled user clearance on top of the robot radius.
	UserClearanceOffset = 1.0
	// RobotRadius is half the track width of the reference base.
	RobotRadius = kinematics.DefaultTrackWidth / 2
)

// StartConfig is the start pose. Theta is in degrees.
type StartConfig struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// GoalConfig is the goal point.
type GoalConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkspaceConfig describes the obstacle map. A nil WorkspaceConfig means the default map.
type WorkspaceConfig struct {
	HalfExtent float64 `json:"half_extent,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	// Open drops the default obstacles. Listing any circle or rect also replaces them.
	Open    bool               `json:"open,omitempty"`
	Circles []workspace.Circle `json:"circles,omitempty"`
	Rects   []workspace.Rect   `json:"rects,omitempty"`
}

// Build returns the workspace the config describes.
func (wc *WorkspaceConfig) Build() (*workspace.Workspace, error) {
	if wc == nil {
		return workspace.Default(), nil
	}
	ws := workspace.Default()
	if wc.Open || len(wc.Circles) > 0 || len(wc.Rects) > 0 {
		ws = workspace.Open()
		ws.Circles = append(ws.Circles, wc.Circles...)
		ws.Rects = append(ws.Rects, wc.Rects...)
	}
	if wc.HalfExtent != 0 {
		ws.HalfExtent = wc.HalfExtent
	}
	if wc.Scale != 0 {
		ws.Scale = wc.Scale
	}
	if err := ws.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid workspace")
	}
	return ws, nil
}

// PlanConfig is one plan request as read from disk.
type PlanConfig struct {
	Start      StartConfig      `json:"start"`
	Goal       GoalConfig       `json:"goal"`
	Clearance  float64          `json:"clearance"`
	RPM1       float64          `json:"rpm1"`
	RPM2       float64          `json:"rpm2"`
	GoalRadius float64          `json:"goal_radius,omitempty"`
	Workspace  *WorkspaceConfig `json:"workspace,omitempty"`
	// UserUnits marks start, goal and clearance as given in user units; see FromUserUnits.
	UserUnits bool `json:"user_units,omitempty"`

	ConfigFilePath string `json:"-"`
}

// FromUserUnits converts a start, goal and clearance given in user units to planner units.
// User coordinates are mirrored through the origin and scaled by UserScale, the heading is
// turned by 180°, and the clearance is scaled and grown by the offset and the robot radius.
func FromUserUnits(start StartConfig, goal GoalConfig, clearance float64) (spatialmath.Pose, r2.Point, float64) {
	return spatialmath.NewPose(-UserScale*start.X, -UserScale*start.Y, start.Theta-180),
		r2.Point{X: -UserScale * goal.X, Y: -UserScale * goal.Y},
		clearance*UserScale + UserClearanceOffset + RobotRadius
}

// Request builds the planner request, converting from user units when the config asks for it.
func (cfg *PlanConfig) Request() *motionplan.PlanRequest {
	req := &motionplan.PlanRequest{
		Start:      spatialmath.NewPose(cfg.Start.X, cfg.Start.Y, cfg.Start.Theta),
		Goal:       r2.Point{X: cfg.Goal.X, Y: cfg.Goal.Y},
		Clearance:  cfg.Clearance,
		SpeedA:     cfg.RPM1,
		SpeedB:     cfg.RPM2,
		GoalRadius: cfg.GoalRadius,
	}
	if cfg.UserUnits {
		req.Start, req.Goal, req.Clearance = FromUserUnits(cfg.Start, cfg.Goal, cfg.Clearance)
	}
	return req
}

// Validate returns every problem that would make the request unplannable in ws. Start and goal
// feasibility failures wrap ErrInvalidStart and ErrInvalidGoal.
func (cfg *PlanConfig) Validate(ws *workspace.Workspace) error {
	var err error
	if cfg.RPM1 < 0 || cfg.RPM2 < 0 {
		err = multierr.Append(err, errors.Errorf("wheel speeds must not be negative, got %v and %v", cfg.RPM1, cfg.RPM2))
	}
	if cfg.RPM1 == 0 && cfg.RPM2 == 0 {
		err = multierr.Append(err, errors.New("at least one wheel speed must be non-zero"))
	}
	if cfg.Clearance < 0 {
		err = multierr.Append(err, errors.Errorf("clearance must not be negative, got %v", cfg.Clearance))
	}
	if cfg.GoalRadius < 0 {
		err = multierr.Append(err, errors.Errorf("goal_radius must not be negative, got %v", cfg.GoalRadius))
	}
	if err != nil {
		return err
	}

	req := cfg.Request()
	if blocker := ws.Blocker(req.Start.Point(), req.Clearance); blocker != "" {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidStart, "%s is blocked by %s", req.Start, blocker))
	}
	if blocker := ws.Blocker(req.Goal, req.Clearance); blocker != "" {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidGoal, "%s is blocked by %s", req.Goal, blocker))
	}
	return err
}
