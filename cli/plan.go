package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/latticeplan/config"
	"go.viam.com/latticeplan/kinematics"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/motionplan"
	"go.viam.com/latticeplan/rimage"
	"go.viam.com/latticeplan/workspace"
)

// clk measures elapsed time and enforces --timeout.
var clk = clock.New()

// PlanAction runs a single search and writes its trajectory.
func PlanAction(c *cli.Context) error {
	logger := newLogger("plan")
	cfg, err := planConfigFromFlags(c)
	if err != nil {
		return err
	}
	ws, err := checkedWorkspace(cfg)
	if err != nil {
		return err
	}

	res, elapsed, err := plan(c.Context, ws, cfg, c.Duration(planFlagTimeout), logger)
	if err != nil {
		return err
	}
	path, pathErr := res.Path()

	if pngPath := c.String(planFlagPNG); pngPath != "" {
		if err := render(pngPath, ws, cfg, res, path); err != nil {
			return err
		}
		logger.Infow("rendered plan", "file", pngPath)
	}

	if pathErr != nil {
		printf(c.App.Writer, "no path found after %d expansions (%s)", res.Stats.Expansions, elapsed)
		return pathErr
	}

	if out := c.String(planFlagOut); out != "" {
		if err := writeTrajectoryFile(out, path); err != nil {
			return err
		}
		logger.Infow("wrote trajectory", "file", out, "waypoints", len(path))
	}

	cost, err := res.Cost()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", waypointTable(path))
	printf(c.App.Writer, "cost %.3f, chord length %.3f, %d waypoints, %d expansions in %s",
		cost, motionplan.ChordLength(path), len(path), res.Stats.Expansions, elapsed)
	return nil
}

// CheckAction validates a request against its workspace without searching.
func CheckAction(c *cli.Context) error {
	cfg, err := planConfigFromFlags(c)
	if err != nil {
		return err
	}
	if _, err := checkedWorkspace(cfg); err != nil {
		return err
	}
	req := cfg.Request()
	printf(c.App.Writer, "request is feasible: start %s, goal (%.3f, %.3f), clearance %.3f",
		req.Start, req.Goal.X, req.Goal.Y, req.Clearance)
	return nil
}

// plan searches until the search finishes or timeout elapses. A zero timeout never expires.
func plan(
	ctx context.Context,
	ws *workspace.Workspace,
	cfg *config.PlanConfig,
	timeout time.Duration,
	logger logging.Logger,
) (*motionplan.PlanResult, time.Duration, error) {
	mp, err := motionplan.NewLatticePlanner(ws, kinematics.NewDiffDrive(), logger)
	if err != nil {
		return nil, 0, err
	}
	req := cfg.Request()
	search, err := mp.NewSearch(req)
	if err != nil {
		return nil, 0, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = clk.WithTimeout(ctx, timeout)
		defer cancel()
	}
	logger.Infow("planning", "start", req.Start.String(), "goal", req.Goal.String(),
		"clearance", req.Clearance, "rpm1", req.SpeedA, "rpm2", req.SpeedB)

	start := clk.Now()
	res, err := runSearch(ctx, search)
	return res, clk.Since(start), err
}

// runSearch steps the search until it finishes or ctx is done.
func runSearch(ctx context.Context, search *motionplan.Search) (*motionplan.PlanResult, error) {
	for search.State() == motionplan.StateRunning {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "search did not finish")
		}
		search.Step()
	}
	return search.Result()
}

func render(pngPath string, ws *workspace.Workspace, cfg *config.PlanConfig, res *motionplan.PlanResult, path []motionplan.Waypoint) error {
	caption := fmt.Sprintf("%s after %d expansions", res.Status, res.Stats.Expansions)
	if cost, err := res.Cost(); err == nil {
		caption = fmt.Sprintf("cost %.2f, %d expansions", cost, res.Stats.Expansions)
	}
	img, err := rimage.DrawPlan(ws, res.Curves, path, rimage.DrawOptions{
		Goal:       &res.Goal,
		GoalRadius: cfg.Request().GoalRadius,
		Caption:    caption,
	})
	if err != nil {
		return err
	}
	return rimage.SavePNG(pngPath, img)
}

func writeTrajectoryFile(path string, waypoints []motionplan.Waypoint) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %q", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return motionplan.WriteTrajectory(f, waypoints)
}

func waypointTable(path []motionplan.Waypoint) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "X", "Y", "Theta", "dX", "dY", "dTheta"})
	for i, wp := range path {
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.3f", wp.Pose.X),
			fmt.Sprintf("%.3f", wp.Pose.Y),
			fmt.Sprintf("%.2f", wp.Pose.Theta),
			fmt.Sprintf("%.3f", wp.DX),
			fmt.Sprintf("%.3f", wp.DY),
			fmt.Sprintf("%.2f", wp.DTheta),
		})
	}
	return t.Render()
}
