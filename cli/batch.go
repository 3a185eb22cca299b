package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"go.viam.com/latticeplan/config"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/motionplan"
)

type batchRow struct {
	file       string
	status     string
	cost       float64
	waypoints  int
	expansions int
	elapsed    time.Duration
}

// BatchAction plans every config file given as an argument. Each search runs on its own
// goroutine and owns its own result. Requests that fail validation are reported as rejected
// rather than aborting the batch; unreadable files do abort it.
func BatchAction(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return errors.New("no config files given")
	}
	logger := newLogger("batch")

	limit := c.Int(batchFlagParallel)
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	rows := make([]batchRow, len(files))
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(limit)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			row, err := planFile(ctx, file, logger.Sublogger(filepath.Base(file)))
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"File", "Status", "Cost", "Waypoints", "Expansions", "Elapsed"})
	for _, row := range rows {
		cost := "-"
		if row.status == motionplan.StateSucceeded.String() {
			cost = fmt.Sprintf("%.3f", row.cost)
		}
		t.AppendRow(table.Row{row.file, statusColor(row.status).Sprint(row.status), cost, row.waypoints, row.expansions, row.elapsed.Round(time.Millisecond)})
	}
	printf(c.App.Writer, "%s", t.Render())

	succeeded := lo.Filter(rows, func(row batchRow, _ int) bool {
		return row.status == motionplan.StateSucceeded.String()
	})
	printf(c.App.Writer, "%d/%d plans succeeded", len(succeeded), len(rows))
	if len(succeeded) > 0 {
		costs := stats.Float64Data(lo.Map(succeeded, func(row batchRow, _ int) float64 { return row.cost }))
		mean, err := costs.Mean()
		if err != nil {
			return err
		}
		median, err := costs.Median()
		if err != nil {
			return err
		}
		printf(c.App.Writer, "cost mean %.3f, median %.3f", mean, median)
	}
	return nil
}

func statusColor(status string) *color.Color {
	switch status {
	case motionplan.StateSucceeded.String():
		return color.New(color.FgGreen)
	case motionplan.StateFailed.String():
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func planFile(ctx context.Context, file string, logger logging.Logger) (batchRow, error) {
	row := batchRow{file: file}
	cfg, err := config.Read(file)
	if err != nil {
		return row, errors.Wrapf(err, "cannot read %q", file)
	}
	ws, err := checkedWorkspace(cfg)
	if err != nil {
		logger.Warnw("rejected", "error", err)
		row.status = "rejected"
		return row, nil
	}

	res, elapsed, err := plan(ctx, ws, cfg, 0, logger)
	if err != nil {
		return row, errors.Wrapf(err, "planning %q", file)
	}
	row.status = res.Status.String()
	row.expansions = res.Stats.Expansions
	row.elapsed = elapsed
	if path, err := res.Path(); err == nil {
		row.waypoints = len(path)
		row.cost, _ = res.Cost()
	}
	return row, nil
}
