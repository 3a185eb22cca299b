package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/latticeplan/config"
	"go.viam.com/latticeplan/kinematics"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/motionplan"
	"go.viam.com/latticeplan/spatialmath"
	"go.viam.com/latticeplan/workspace"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"latticeplan"}, args...))
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "nodePath.txt")
	pngPath := filepath.Join(dir, "plan.png")
	logPath := filepath.Join(dir, "latticeplan.log")

	out, errOut, err := runApp(t, "--log-file", logPath, "plan", "--open",
		"--start-x", "0", "--start-y", "0", "--start-theta", "0",
		"--goal-x", "30", "--goal-y", "0",
		"--clearance", "2.77", "--rpm1", "50", "--rpm2", "100",
		"--out", outPath, "--png", pngPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "DTHETA")
	test.That(t, out, test.ShouldContainSubstring, "expansions in")
	test.That(t, errOut, test.ShouldContainSubstring, "request_id")
	test.That(t, errOut, test.ShouldContainSubstring, "path found")

	//nolint:gosec
	f, err := os.Open(outPath)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	path, err := motionplan.ReadTrajectory(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldBeGreaterThan, 1)
	test.That(t, path[0], test.ShouldResemble, motionplan.Waypoint{})
	last := path[len(path)-1].Pose.Point()
	test.That(t, spatialmath.Distance(last, r2.Point{X: 30}), test.ShouldBeLessThan, motionplan.DefaultGoalRadius)

	_, err = os.Stat(pngPath)
	test.That(t, err, test.ShouldBeNil)

	//nolint:gosec
	logged, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logged), test.ShouldContainSubstring, "wrote trajectory")
}

func TestLogLevelFlags(t *testing.T) {
	previous := logging.Global()
	defer logging.ReplaceGlobal(previous)

	planArgs := []string{
		"plan", "--open",
		"--goal-x", "10", "--goal-y", "0",
		"--clearance", "2.77", "--rpm1", "50", "--rpm2", "100",
		"--out", "",
	}

	_, errOut, err := runApp(t, append([]string{"--log-level", "warn"}, planArgs...)...)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.WARN)
	test.That(t, errOut, test.ShouldNotContainSubstring, "path found")

	_, errOut, err = runApp(t, append([]string{"--log-level", "warn", "--debug"}, planArgs...)...)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.DEBUG)
	test.That(t, errOut, test.ShouldContainSubstring, "search finished")
	test.That(t, errOut, test.ShouldContainSubstring, "latticeplan.plan")

	_, _, err = runApp(t, append([]string{"--log-level", "loud"}, planArgs...)...)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid --log-level")
}

func TestPlanCommandRejectsInfeasibleGoal(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "plan.json", `{
		"start": {"x": 4, "y": 4, "theta": 0},
		"goal": {"x": 0, "y": 0},
		"rpm1": 50, "rpm2": 100,
		"user_units": true
	}`)

	_, _, err := runApp(t, "plan", "--config", cfgPath, "--out", "")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, config.ErrInvalidGoal), test.ShouldBeTrue)

	_, _, err = runApp(t, "check", "--config", cfgPath)
	test.That(t, errors.Is(err, config.ErrInvalidGoal), test.ShouldBeTrue)
}

func TestCheckCommand(t *testing.T) {
	out, _, err := runApp(t, "check", "--user-units",
		"--start-x", "4", "--start-y", "4", "--goal-x", "4", "--goal-y", "-3",
		"--rpm1", "50", "--rpm2", "100")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "request is feasible")
	test.That(t, out, test.ShouldContainSubstring, "clearance 2.770")

	_, _, err = runApp(t, "check", "--start-x", "-40", "--start-y", "-40", "--goal-x", "0", "--goal-y", "40",
		"--clearance", "20", "--rpm1", "50", "--rpm2", "100", "--open")
	test.That(t, errors.Is(err, config.ErrInvalidStart), test.ShouldBeTrue)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	open := writeConfig(t, dir, "open.json", `{
		"start": {"x": 0, "y": 0, "theta": 0},
		"goal": {"x": 30, "y": 0},
		"clearance": 2.77, "rpm1": 50, "rpm2": 100,
		"workspace": {"open": true}
	}`)
	obstacles := writeConfig(t, dir, "obstacles.json", `{
		"start": {"x": -40, "y": -40, "theta": 90},
		"goal": {"x": -40, "y": 30},
		"clearance": 2.77, "rpm1": 50, "rpm2": 100
	}`)
	rejected := writeConfig(t, dir, "rejected.json", `{
		"start": {"x": 0, "y": 0, "theta": 0},
		"goal": {"x": 30, "y": 0},
		"clearance": 2.77, "rpm1": 50, "rpm2": 100
	}`)

	out, _, err := runApp(t, "batch", "--parallel", "2", open, obstacles, rejected)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "open.json")
	test.That(t, out, test.ShouldContainSubstring, "obstacles.json")
	test.That(t, out, test.ShouldContainSubstring, "rejected")
	test.That(t, out, test.ShouldContainSubstring, "2/3 plans succeeded")
	test.That(t, out, test.ShouldContainSubstring, "cost mean")

	_, _, err = runApp(t, "batch")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "batch", filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPrimitivesCommand(t *testing.T) {
	out, _, err := runApp(t, "primitives", "--rpm1", "50", "--rpm2", "100")
	test.That(t, err, test.ShouldBeNil)
	for _, p := range kinematics.Primitives(50, 100) {
		test.That(t, out, test.ShouldContainSubstring, p.String())
	}
	test.That(t, strings.Count(out, "\n"), test.ShouldBeGreaterThanOrEqualTo, kinematics.NumPrimitives)

	_, _, err = runApp(t, "primitives", "--rpm1", "-5", "--rpm2", "100")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	for _, field := range []string{"start", "goal", "clearance", "rpm1", "rpm2", "user_units", "workspace"} {
		test.That(t, out, test.ShouldContainSubstring, `"`+field+`"`)
	}
	test.That(t, out, test.ShouldNotContainSubstring, "ConfigFilePath")
}

func TestRunSearchDeadline(t *testing.T) {
	mp, err := motionplan.NewLatticePlanner(workspace.Default(), kinematics.NewDiffDrive(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	search, err := mp.NewSearch(&motionplan.PlanRequest{
		Start:     spatialmath.NewPose(-40, -40, 90),
		Goal:      r2.Point{X: -40, Y: 30},
		Clearance: 2.77,
		SpeedA:    50,
		SpeedB:    100,
	})
	test.That(t, err, test.ShouldBeNil)

	mock := clock.NewMock()
	ctx, cancel := mock.WithTimeout(context.Background(), time.Second)
	defer cancel()
	mock.Add(2 * time.Second)
	<-ctx.Done()

	_, err = runSearch(ctx, search)
	test.That(t, errors.Is(err, context.DeadlineExceeded), test.ShouldBeTrue)
	test.That(t, search.State(), test.ShouldEqual, motionplan.StateRunning)

	res, err := runSearch(context.Background(), search)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Status, test.ShouldEqual, motionplan.StateSucceeded)
}
