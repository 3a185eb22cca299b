package workspace

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestDefaultObstacles(t *testing.T) {
	ws := Default()

	test.That(t, ws.Feasible(r2.Point{X: 0, Y: 0}, 0), test.ShouldBeFalse)
	test.That(t, ws.Blocker(r2.Point{X: 0, Y: 0}, 0), test.ShouldEqual, "circle_center")
	test.That(t, ws.Blocker(r2.Point{X: -20, Y: -30}, 0), test.ShouldEqual, "circle_bottom_left")
	test.That(t, ws.Blocker(r2.Point{X: 20, Y: -30}, 0), test.ShouldEqual, "circle_bottom_right")
	test.That(t, ws.Blocker(r2.Point{X: 20, Y: 30}, 0), test.ShouldEqual, "circle_top_right")
	test.That(t, ws.Blocker(r2.Point{X: -40, Y: 0}, 0), test.ShouldEqual, "square_left")
	test.That(t, ws.Blocker(r2.Point{X: -20, Y: 30}, 0), test.ShouldEqual, "square_left_top")
	test.That(t, ws.Blocker(r2.Point{X: 40, Y: 0}, 0), test.ShouldEqual, "square_right")
	test.That(t, ws.Blocker(r2.Point{X: -40, Y: -40}, 0), test.ShouldEqual, "")
	test.That(t, ws.Feasible(r2.Point{X: 40, Y: 40}, 3), test.ShouldBeTrue)
}

func TestBoundarySemantics(t *testing.T) {
	ws := Default()

	t.Run("circle rim is free", func(t *testing.T) {
		test.That(t, ws.Feasible(r2.Point{X: 10, Y: 0}, 0), test.ShouldBeTrue)
		test.That(t, ws.Feasible(r2.Point{X: 9.99, Y: 0}, 0), test.ShouldBeFalse)
		test.That(t, ws.Feasible(r2.Point{X: 10, Y: 0}, 1), test.ShouldBeFalse)
	})

	t.Run("rectangle edge is free", func(t *testing.T) {
		test.That(t, ws.Feasible(r2.Point{X: -32.5, Y: 0}, 0), test.ShouldBeTrue)
		test.That(t, ws.Feasible(r2.Point{X: -32.6, Y: 0}, 0), test.ShouldBeFalse)
		test.That(t, ws.Feasible(r2.Point{X: -40, Y: 7.5}, 0), test.ShouldBeTrue)
		test.That(t, ws.Feasible(r2.Point{X: -40, Y: 7.5}, 1), test.ShouldBeFalse)
	})

	t.Run("border is inclusive", func(t *testing.T) {
		test.That(t, ws.Feasible(r2.Point{X: 50, Y: 20}, 0), test.ShouldBeTrue)
		test.That(t, ws.Feasible(r2.Point{X: 50.01, Y: 20}, 0), test.ShouldBeFalse)
		test.That(t, ws.Feasible(r2.Point{X: -50, Y: -50}, 0), test.ShouldBeTrue)
		test.That(t, ws.Blocker(r2.Point{X: 49, Y: 20}, 2), test.ShouldEqual, "border")
		test.That(t, ws.Blocker(r2.Point{X: 20, Y: -49}, 2), test.ShouldEqual, "border")
	})
}

func TestOpen(t *testing.T) {
	ws := Open()
	test.That(t, ws.Feasible(r2.Point{X: 0, Y: 0}, 5), test.ShouldBeTrue)
	test.That(t, ws.Feasible(r2.Point{X: 30, Y: 0}, 5), test.ShouldBeTrue)
	test.That(t, ws.Feasible(r2.Point{X: 46, Y: 0}, 5), test.ShouldBeFalse)
	lo, hi := ws.Bounds()
	test.That(t, lo, test.ShouldResemble, r2.Point{X: -50, Y: -50})
	test.That(t, hi, test.ShouldResemble, r2.Point{X: 50, Y: 50})
}

func TestMonotonicClearance(t *testing.T) {
	ws := Default()
	clearances := []float64{0, 0.5, 1, 2.77, 4, 6.5}
	for x := -55.; x <= 55; x += 1.25 {
		for y := -55.; y <= 55; y += 1.25 {
			p := r2.Point{X: x, Y: y}
			for i := 1; i < len(clearances); i++ {
				if ws.Feasible(p, clearances[i]) {
					test.That(t, ws.Feasible(p, clearances[i-1]), test.ShouldBeTrue)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	ws := Default()
	p := r2.Point{X: -12.345, Y: 27.5}
	first := ws.Feasible(p, 2.77)
	for i := 0; i < 100; i++ {
		test.That(t, ws.Feasible(p, 2.77), test.ShouldEqual, first)
	}
}

func TestValidate(t *testing.T) {
	test.That(t, Default().Validate(), test.ShouldBeNil)
	test.That(t, Open().Validate(), test.ShouldBeNil)

	bad := &Workspace{
		HalfExtent: 0,
		Scale:      10,
		Circles:    []Circle{{Center: r2.Point{}, Radius: -1}},
		Rects:      []Rect{{Label: "flat", Min: r2.Point{X: 1, Y: 1}, Max: r2.Point{X: 2, Y: 1}}},
	}
	err := bad.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "half_extent must be positive")
	test.That(t, err.Error(), test.ShouldContainSubstring, "circle_0: radius must be positive")
	test.That(t, err.Error(), test.ShouldContainSubstring, "flat: min must be below max")
}
