package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/latticeplan/config"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/workspace"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck // no need to check error
	fmt.Fprintf(w, format+"\n", a...)
}

// logFile is shared by every logger of one run and closed when the run ends.
var logFile *logging.FileAppender

// setupLogging installs the run's logger as the global one. It writes to the app's error
// output, and to --log-file when that is set.
func setupLogging(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", generalFlagLogLevel)
	}
	if c.Bool(generalFlagDebug) {
		level = logging.DEBUG
	}

	logger := logging.NewBlankLogger(c.App.Name)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if path := c.String(generalFlagLogFile); path != "" {
		logFile = logging.NewFileAppender(path)
		logger.AddAppender(logFile)
	}
	logger.SetLevel(level)
	logging.ReplaceGlobal(logger)
	return nil
}

func closeLogFile(c *cli.Context) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// newLogger returns a sublogger of the global logger, tagged with a fresh request id.
func newLogger(name string) logging.Logger {
	return logging.Global().Sublogger(name).WithFields("request_id", uuid.NewString())
}

// planConfigFromFlags reads the request from --config when it is set and from the request
// flags otherwise.
func planConfigFromFlags(c *cli.Context) (*config.PlanConfig, error) {
	if path := c.String(generalFlagConfig); path != "" {
		cfg, err := config.Read(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read %q", path)
		}
		return cfg, nil
	}

	cfg := &config.PlanConfig{
		Start: config.StartConfig{
			X:     c.Float64(planFlagStartX),
			Y:     c.Float64(planFlagStartY),
			Theta: c.Float64(planFlagStartTheta),
		},
		Goal: config.GoalConfig{
			X: c.Float64(planFlagGoalX),
			Y: c.Float64(planFlagGoalY),
		},
		Clearance:  c.Float64(planFlagClearance),
		RPM1:       c.Float64(planFlagRPM1),
		RPM2:       c.Float64(planFlagRPM2),
		GoalRadius: c.Float64(planFlagGoalRadius),
		UserUnits:  c.Bool(planFlagUserUnits),
	}
	if c.Bool(planFlagOpen) {
		cfg.Workspace = &config.WorkspaceConfig{Open: true}
	}
	return cfg, nil
}

// checkedWorkspace builds the workspace of cfg and validates cfg against it.
func checkedWorkspace(cfg *config.PlanConfig) (*workspace.Workspace, error) {
	ws, err := cfg.Workspace.Build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(ws); err != nil {
		return nil, errors.Wrap(err, "invalid plan request")
	}
	return ws, nil
}
