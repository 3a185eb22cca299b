// Package kinematics integrates the motion of a two wheel differential drive base under a
// constant pair of wheel speeds.
package kinematics

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/latticeplan/spatialmath"
)

const (
	// DefaultWheelRadius is the wheel radius of the reference base.
	DefaultWheelRadius = 0.38
	// DefaultTrackWidth is the distance between the wheels of the reference base.
	DefaultTrackWidth = 3.54
	// DefaultHorizon is how long each primitive is held.
	DefaultHorizon = 1.0
	// DefaultSubsteps is how many feasibility checked increments a horizon is split into.
	DefaultSubsteps = 10
)

// Checker decides whether a position is free at a given clearance.
type Checker interface {
	Feasible(p r2.Point, clearance float64) bool
}

// FreeSpace is a Checker that accepts every point.
type FreeSpace struct{}

// Feasible always returns true.
func (FreeSpace) Feasible(r2.Point, float64) bool { return true }

// DiffDrive holds the fixed geometry of a differential drive base and the integration step.
type DiffDrive struct {
	WheelRadius float64
	TrackWidth  float64
	Horizon     float64
	Substeps    int
}

// NewDiffDrive returns the reference base: r = 0.38, L = 3.54, ten 0.1 substeps.
func NewDiffDrive() DiffDrive {
	return DiffDrive{
		WheelRadius: DefaultWheelRadius,
		TrackWidth:  DefaultTrackWidth,
		Horizon:     DefaultHorizon,
		Substeps:    DefaultSubsteps,
	}
}

// Validate checks that the base geometry is usable.
func (d DiffDrive) Validate() error {
	if d.WheelRadius <= 0 || d.TrackWidth <= 0 {
		return errors.Errorf("wheel radius and track width must be positive, got %v and %v", d.WheelRadius, d.TrackWidth)
	}
	if d.Horizon <= 0 || d.Substeps <= 0 {
		return errors.Errorf("horizon and substeps must be positive, got %v and %d", d.Horizon, d.Substeps)
	}
	return nil
}

// Step is the outcome of integrating one primitive.
type Step struct {
	// End is the pose reached, heading normalized to [0, 360).
	End spatialmath.Pose
	// Length is the summed length of every integrated substep.
	Length float64
	// Segments holds one entry per substep whose endpoint was feasible.
	Segments []spatialmath.Segment
	// Substeps is the number of substeps integrated, including a failing one.
	Substeps int
	// Truncated is set when a substep ended on an infeasible point and integration stopped.
	Truncated bool
}

// RPMToRadPerSec converts a wheel speed in revolutions per minute to radians per second.
func RPMToRadPerSec(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}

// Integrate drives the base from start with the primitive's wheel speeds for one horizon. After
// every substep the position is checked against ws at the given clearance; heading is not
// checked. On the first infeasible substep integration stops and the pose and length reached at
// the end of that substep are returned as they are, with no rollback. Callers must recheck
// Step.End before using it.
func (d DiffDrive) Integrate(start spatialmath.Pose, p Primitive, clearance float64, ws Checker) Step {
	wl := RPMToRadPerSec(p.Left)
	wr := RPMToRadPerSec(p.Right)
	dt := d.Horizon / float64(d.Substeps)
	linear := d.WheelRadius / 2 * (wl + wr)
	angular := d.WheelRadius / d.TrackWidth * (wr - wl)

	theta := start.ThetaRadians()
	var accumDX, accumDY float64
	prev := start.Point()
	step := Step{Segments: make([]spatialmath.Segment, 0, d.Substeps)}

	for i := 0; i < d.Substeps; i++ {
		dx := linear * math.Cos(theta) * dt
		dy := linear * math.Sin(theta) * dt
		accumDX += dx
		accumDY += dy
		theta += angular * dt

		cur := r2.Point{X: start.X + accumDX, Y: start.Y + accumDY}
		step.Length += math.Sqrt(dx*dx + dy*dy)
		step.Substeps++
		if !ws.Feasible(cur, clearance) {
			step.Truncated = true
			break
		}
		step.Segments = append(step.Segments, spatialmath.Segment{Start: prev, End: cur})
		prev = cur
	}

	step.End = spatialmath.NewPose(start.X+accumDX, start.Y+accumDY, spatialmath.RadToDeg(theta))
	return step
}
