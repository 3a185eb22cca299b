package motionplan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/latticeplan/spatialmath"
)

const trajectoryFields = 6

// WriteTrajectory writes one line per waypoint, start first: "x, y, theta, dx, dy, dtheta".
func WriteTrajectory(w io.Writer, path []Waypoint) error {
	bw := bufio.NewWriter(w)
	for _, wp := range path {
		fields := []float64{wp.Pose.X, wp.Pose.Y, wp.Pose.Theta, wp.DX, wp.DY, wp.DTheta}
		strs := make([]string, len(fields))
		for i, f := range fields {
			strs[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(strs, ", ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTrajectory parses the output of WriteTrajectory. Blank lines are skipped.
func ReadTrajectory(r io.Reader) ([]Waypoint, error) {
	var path []Waypoint
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != trajectoryFields {
			return nil, errors.Errorf("line %d: expected %d fields, got %d", lineNum, trajectoryFields, len(parts))
		}
		var vals [trajectoryFields]float64
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			vals[i] = v
		}
		path = append(path, Waypoint{
			Pose:   spatialmath.Pose{X: vals[0], Y: vals[1], Theta: vals[2]},
			DX:     vals[3],
			DY:     vals[4],
			DTheta: vals[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return path, nil
}
