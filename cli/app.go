// Package cli contains the latticeplan command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"
	generalFlagConfig   = "config"
	generalFlagLogFile  = "log-file"

	planFlagStartX     = "start-x"
	planFlagStartY     = "start-y"
	planFlagStartTheta = "start-theta"
	planFlagGoalX      = "goal-x"
	planFlagGoalY      = "goal-y"
	planFlagClearance  = "clearance"
	planFlagRPM1       = "rpm1"
	planFlagRPM2       = "rpm2"
	planFlagGoalRadius = "goal-radius"
	planFlagUserUnits  = "user-units"
	planFlagOpen       = "open"
	planFlagOut        = "out"
	planFlagPNG        = "png"
	planFlagTimeout    = "timeout"

	batchFlagParallel = "parallel"
)

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load the plan request from `FILE`; the request flags below are ignored",
		},
		&cli.Float64Flag{Name: planFlagStartX, Usage: "start x"},
		&cli.Float64Flag{Name: planFlagStartY, Usage: "start y"},
		&cli.Float64Flag{Name: planFlagStartTheta, Usage: "start heading in degrees"},
		&cli.Float64Flag{Name: planFlagGoalX, Usage: "goal x"},
		&cli.Float64Flag{Name: planFlagGoalY, Usage: "goal y"},
		&cli.Float64Flag{Name: planFlagClearance, Usage: "obstacle clearance, robot radius included unless --user-units is set"},
		&cli.Float64Flag{Name: planFlagRPM1, Usage: "first wheel speed in rpm"},
		&cli.Float64Flag{Name: planFlagRPM2, Usage: "second wheel speed in rpm"},
		&cli.Float64Flag{Name: planFlagGoalRadius, Usage: "distance from the goal that counts as arrived"},
		&cli.BoolFlag{Name: planFlagUserUnits, Usage: "interpret start, goal and clearance in user units"},
		&cli.BoolFlag{Name: planFlagOpen, Usage: "plan in a workspace without the default obstacles"},
	}
}

var app = &cli.App{
	Name:            "latticeplan",
	Usage:           "plan paths for a differential drive base",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging, same as --log-level debug",
		},
		&cli.StringFlag{
			Name:  generalFlagLogLevel,
			Value: "info",
			Usage: "minimum `LEVEL` to log: debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  generalFlagLogFile,
			Usage: "also append log lines to the size rotated `FILE`",
		},
	},
	Before: setupLogging,
	After:  closeLogFile,
	Commands: []*cli.Command{
		{
			Name:      "plan",
			Usage:     "search for a path and write its trajectory",
			UsageText: "latticeplan plan [--config FILE | request flags] [other options]",
			Flags: append(requestFlags(),
				&cli.StringFlag{
					Name:  planFlagOut,
					Value: "nodePath.txt",
					Usage: "write the trajectory to `FILE`; empty to skip",
				},
				&cli.StringFlag{
					Name:  planFlagPNG,
					Usage: "render the workspace, explored curves and path to `FILE`",
				},
				&cli.DurationFlag{
					Name:  planFlagTimeout,
					Usage: "give up after this long; zero waits for the search to finish",
				},
			),
			Action: PlanAction,
		},
		{
			Name:      "batch",
			Usage:     "plan several config files concurrently",
			UsageText: "latticeplan batch [--parallel N] FILE...",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  batchFlagParallel,
					Usage: "maximum number of searches running at once; zero means one per CPU",
				},
			},
			Action: BatchAction,
		},
		{
			Name:   "check",
			Usage:  "check that a plan request is feasible without searching",
			Flags:  requestFlags(),
			Action: CheckAction,
		},
		{
			Name:  "primitives",
			Usage: "print the motion primitives for two wheel speeds",
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: planFlagRPM1, Required: true, Usage: "first wheel speed in rpm"},
				&cli.Float64Flag{Name: planFlagRPM2, Required: true, Usage: "second wheel speed in rpm"},
			},
			Action: PrimitivesAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of plan config files",
			Action: SchemaAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
