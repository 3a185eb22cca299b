package motionplan

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"
)

func TestTrajectoryRoundTrip(t *testing.T) {
	path, err := handBuiltResult().Path()
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, WriteTrajectory(&buf, path), test.ShouldBeNil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.That(t, len(lines), test.ShouldEqual, len(path))
	test.That(t, lines[0], test.ShouldEqual, "0, 0, 10, 0, 0, 0")
	test.That(t, lines[1], test.ShouldEqual, "10, 0, 20, 1, 0, 1")

	got, err := ReadTrajectory(&buf)
	test.That(t, err, test.ShouldBeNil)
	if diff := cmp.Diff(path, got); diff != "" {
		t.Errorf("trajectory mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTrajectory(t *testing.T) {
	got, err := ReadTrajectory(strings.NewReader("\n1, 2, 3, 0.1, 0.2, 0.3\n\n  -1.5,2,359.5,0,0,-1  \n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(got), test.ShouldEqual, 2)
	test.That(t, got[1].Pose.X, test.ShouldEqual, -1.5)
	test.That(t, got[1].Pose.Theta, test.ShouldEqual, 359.5)
	test.That(t, got[1].DTheta, test.ShouldEqual, -1)

	_, err = ReadTrajectory(strings.NewReader("1, 2, 3\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 1: expected 6 fields")

	_, err = ReadTrajectory(strings.NewReader("0, 0, 0, 0, 0, 0\n1, 2, x, 0, 0, 0\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 2")

	got, err = ReadTrajectory(strings.NewReader(""))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldBeEmpty)
}
