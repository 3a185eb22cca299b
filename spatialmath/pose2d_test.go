package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestNormalizeDegrees(t *testing.T) {
	for inp, expected := range map[float64]float64{
		0:      0,
		359.5:  359.5,
		360:    0,
		-180:   180,
		-360:   0,
		725:    5,
		-0.25:  359.75,
		-719.5: 0.5,
	} {
		test.That(t, NormalizeDegrees(inp), test.ShouldAlmostEqual, expected)
	}
	test.That(t, NormalizeDegrees(-1e-15), test.ShouldBeLessThan, 360)
}

func TestPose(t *testing.T) {
	p := NewPose(1, -2, -90)
	test.That(t, p.Theta, test.ShouldEqual, 270.)
	test.That(t, p.Point(), test.ShouldResemble, r2.Point{X: 1, Y: -2})
	test.That(t, p.ThetaRadians(), test.ShouldAlmostEqual, 3*math.Pi/2)
	test.That(t, p.IsFinite(), test.ShouldBeTrue)
	test.That(t, Pose{X: math.NaN()}.IsFinite(), test.ShouldBeFalse)
	test.That(t, Pose{Theta: math.Inf(1)}.IsFinite(), test.ShouldBeFalse)
	test.That(t, p.String(), test.ShouldEqual, "(1.000, -2.000, 270.00°)")
}

func TestSegment(t *testing.T) {
	s := Segment{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 3, Y: 4}}
	test.That(t, s.Length(), test.ShouldAlmostEqual, 5.)
	test.That(t, RadToDeg(DegToRad(123.4)), test.ShouldAlmostEqual, 123.4)
}
