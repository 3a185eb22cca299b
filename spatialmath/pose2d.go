// Package spatialmath defines the planar pose and segment types shared by the planner packages.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Pose is a planar pose. Theta is the heading in degrees.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// NewPose returns a pose with its heading normalized to [0, 360).
func NewPose(x, y, theta float64) Pose {
	return Pose{X: x, Y: y, Theta: NormalizeDegrees(theta)}
}

// Point returns the position of the pose.
func (p Pose) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// ThetaRadians returns the heading in radians.
func (p Pose) ThetaRadians() float64 {
	return DegToRad(p.Theta)
}

// IsFinite reports whether no component of the pose is NaN or infinite.
func (p Pose) IsFinite() bool {
	for _, v := range []float64{p.X, p.Y, p.Theta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.2f°)", p.X, p.Y, p.Theta)
}

// NormalizeDegrees wraps an angle in degrees into [0, 360).
func NormalizeDegrees(theta float64) float64 {
	theta = math.Mod(theta, 360)
	if theta < 0 {
		theta += 360
	}
	// math.Mod of a tiny negative value can round back up to exactly 360.
	if theta >= 360 {
		theta -= 360
	}
	return theta
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Distance returns the euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// Segment is a straight piece of a traced curve.
type Segment struct {
	Start r2.Point
	End   r2.Point
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return Distance(s.Start, s.End)
}
