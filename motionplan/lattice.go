package motionplan

import (
	"fmt"
	"math"

	"go.viam.com/latticeplan/spatialmath"
)

// RegionKey is the discrete identity of a pose in the state lattice: a unit cell plus a one
// degree heading bucket. Poses closer than one unit or one degree may share a key, and the
// search keeps only one node per key.
type RegionKey struct {
	X     int
	Y     int
	Theta int
}

func (k RegionKey) String() string {
	return fmt.Sprintf("(%d, %d, %d)", k.X, k.Y, k.Theta)
}

// KeyOf maps a pose to its region key: (floor(x), floor(y), ((round(theta) mod 360) + 360) mod 360).
func KeyOf(p spatialmath.Pose) RegionKey {
	theta := int(math.Round(p.Theta))
	return RegionKey{
		X:     int(math.Floor(p.X)),
		Y:     int(math.Floor(p.Y)),
		Theta: ((theta % 360) + 360) % 360,
	}
}
