package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/latticeplan/kinematics"
	"go.viam.com/latticeplan/spatialmath"
)

// PrimitivesAction prints the primitives for two wheel speeds and where one horizon of each
// takes the base from the origin.
func PrimitivesAction(c *cli.Context) error {
	rpm1, rpm2 := c.Float64(planFlagRPM1), c.Float64(planFlagRPM2)
	if rpm1 < 0 || rpm2 < 0 {
		return errors.Errorf("wheel speeds must not be negative, got %v and %v", rpm1, rpm2)
	}

	drive := kinematics.NewDiffDrive()
	origin := spatialmath.NewPose(0, 0, 0)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Wheels", "dX", "dY", "dTheta", "Length"})
	for i, p := range kinematics.Primitives(rpm1, rpm2) {
		step := drive.Integrate(origin, p, 0, kinematics.FreeSpace{})
		dtheta := step.End.Theta
		if dtheta > 180 {
			dtheta -= 360
		}
		t.AppendRow(table.Row{
			i,
			p.String(),
			fmt.Sprintf("%.3f", step.End.X),
			fmt.Sprintf("%.3f", step.End.Y),
			fmt.Sprintf("%.2f", dtheta),
			fmt.Sprintf("%.3f", step.Length),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}
