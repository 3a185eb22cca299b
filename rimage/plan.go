package rimage

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/latticeplan/motionplan"
	"go.viam.com/latticeplan/spatialmath"
	"go.viam.com/latticeplan/workspace"
)

const (
	// DefaultPixelsPerUnit is the rendering resolution per workspace unit.
	DefaultPixelsPerUnit = 100.0
	maxImageSide         = 10000
)

// Colors used by DrawPlan.
var (
	BackgroundColor = color.RGBA{255, 255, 255, 255}
	ObstacleColor   = color.RGBA{40, 40, 40, 255}
	// Explored curves fade from CurveColor to LateCurveColor in the order they were accepted.
	CurveColor     = color.RGBA{70, 130, 180, 255}
	LateCurveColor = color.RGBA{150, 220, 230, 255}
	PathColor      = color.RGBA{220, 20, 60, 255}
	GoalColor      = color.RGBA{34, 139, 34, 255}
	TextColor      = color.RGBA{0, 0, 0, 255}
)

// DrawOptions tunes DrawPlan.
type DrawOptions struct {
	// PixelsPerUnit defaults to DefaultPixelsPerUnit when zero.
	PixelsPerUnit float64
	// Goal, when set, is marked with a circle of GoalRadius planner units.
	Goal       *r2.Point
	GoalRadius float64
	Caption    string
}

// DrawPlan renders the workspace obstacles, the explored substep curves and the path. Curves and
// path are in planner units and are converted with the workspace scale.
func DrawPlan(ws *workspace.Workspace, curves []spatialmath.Segment, path []motionplan.Waypoint, opts DrawOptions) (image.Image, error) {
	if err := ws.Validate(); err != nil {
		return nil, errors.Wrap(err, "cannot draw invalid workspace")
	}
	ppu := opts.PixelsPerUnit
	if ppu == 0 {
		ppu = DefaultPixelsPerUnit
	}
	if ppu < 0 || math.IsNaN(ppu) {
		return nil, errors.Errorf("pixels per unit must be positive, got %v", ppu)
	}
	side := 2 * ws.HalfExtent * ppu
	if side < 1 || side > maxImageSide {
		return nil, errors.Errorf("image side of %v pixels is out of range", side)
	}

	c := canvas{ws: ws, ppu: ppu}
	dc := gg.NewContext(int(math.Round(side)), int(math.Round(side)))
	dc.SetColor(BackgroundColor)
	dc.Clear()

	dc.SetColor(ObstacleColor)
	for _, circle := range ws.Circles {
		center := c.toPixel(circle.Center)
		dc.DrawCircle(center.X, center.Y, circle.Radius*ppu)
		dc.Fill()
	}
	for _, rect := range ws.Rects {
		// image y grows downwards, so the top left corner comes from Max.Y
		topLeft := c.toPixel(r2.Point{X: rect.Min.X, Y: rect.Max.Y})
		dc.DrawRectangle(topLeft.X, topLeft.Y, (rect.Max.X-rect.Min.X)*ppu, (rect.Max.Y-rect.Min.Y)*ppu)
		dc.Fill()
	}

	DrawRectangleEmpty(dc, r2.Point{}, r2.Point{X: side, Y: side}, ObstacleColor, 4)

	early, _ := colorful.MakeColor(CurveColor)
	late, _ := colorful.MakeColor(LateCurveColor)
	for i, seg := range curves {
		blend := early.BlendLab(late, float64(i)/float64(len(curves))).Clamped()
		DrawSegment(dc, c.fromPlanner(seg.Start), c.fromPlanner(seg.End), blend, 1)
	}

	for i := 1; i < len(path); i++ {
		DrawSegment(dc, c.fromPlanner(path[i-1].Pose.Point()), c.fromPlanner(path[i].Pose.Point()), PathColor, 3)
	}

	if opts.Goal != nil {
		goal := c.fromPlanner(*opts.Goal)
		radius := opts.GoalRadius
		if radius <= 0 {
			radius = motionplan.DefaultGoalRadius
		}
		dc.SetColor(GoalColor)
		dc.SetLineWidth(2)
		dc.DrawCircle(goal.X, goal.Y, radius/ws.Scale*ppu)
		dc.Stroke()
	}

	if opts.Caption != "" {
		DrawString(dc, opts.Caption, r2.Point{X: 10, Y: 10}, TextColor, 24)
	}
	return dc.Image(), nil
}

type canvas struct {
	ws  *workspace.Workspace
	ppu float64
}

// toPixel maps a point in workspace units to image coordinates.
func (c canvas) toPixel(p r2.Point) r2.Point {
	return r2.Point{
		X: (p.X + c.ws.HalfExtent) * c.ppu,
		Y: (c.ws.HalfExtent - p.Y) * c.ppu,
	}
}

func (c canvas) fromPlanner(p r2.Point) r2.Point {
	return c.toPixel(r2.Point{X: p.X / c.ws.Scale, Y: p.Y / c.ws.Scale})
}
