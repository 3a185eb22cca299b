package rimage

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/latticeplan/motionplan"
	"go.viam.com/latticeplan/spatialmath"
	"go.viam.com/latticeplan/workspace"
)

func colorAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestDrawPlan(t *testing.T) {
	ws := workspace.Default()
	path := []motionplan.Waypoint{
		{Pose: spatialmath.NewPose(-40, -45, 0)},
		{Pose: spatialmath.NewPose(40, -45, 0)},
	}
	curves := []spatialmath.Segment{{Start: r2.Point{X: -45, Y: 45}, End: r2.Point{X: 45, Y: 45}}}
	goal := r2.Point{X: 40, Y: -45}

	img, err := DrawPlan(ws, curves, path, DrawOptions{Goal: &goal, Caption: "cost 80"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 1000, 1000))

	// center of circle_center
	test.That(t, colorAt(img, 500, 500), test.ShouldResemble, ObstacleColor)
	// center of square_right, workspace (4, 0)
	test.That(t, colorAt(img, 900, 500), test.ShouldResemble, ObstacleColor)
	// free space
	test.That(t, colorAt(img, 500, 250), test.ShouldResemble, BackgroundColor)
	// on the path, workspace y = -4.5
	test.That(t, colorAt(img, 300, 950), test.ShouldResemble, PathColor)
	// the explored curve, workspace y = 4.5
	test.That(t, colorAt(img, 300, 50), test.ShouldNotResemble, BackgroundColor)
}

func TestDrawPlanResolution(t *testing.T) {
	img, err := DrawPlan(workspace.Open(), nil, nil, DrawOptions{PixelsPerUnit: 20})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 200)
	test.That(t, colorAt(img, 100, 100), test.ShouldResemble, BackgroundColor)

	_, err = DrawPlan(workspace.Open(), nil, nil, DrawOptions{PixelsPerUnit: -1})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = DrawPlan(workspace.Open(), nil, nil, DrawOptions{PixelsPerUnit: 1e6})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = DrawPlan(&workspace.Workspace{}, nil, nil, DrawOptions{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSavePNG(t *testing.T) {
	img, err := DrawPlan(workspace.Default(), nil, nil, DrawOptions{PixelsPerUnit: 10})
	test.That(t, err, test.ShouldBeNil)

	out := filepath.Join(t.TempDir(), "plan.png")
	test.That(t, SavePNG(out, img), test.ShouldBeNil)

	//nolint:gosec
	f, err := os.Open(out)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	decoded, err := png.Decode(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded.Bounds(), test.ShouldResemble, img.Bounds())

	err = SavePNG(filepath.Join(t.TempDir(), "missing", "plan.png"), img)
	test.That(t, err, test.ShouldNotBeNil)
}
