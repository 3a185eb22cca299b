package kinematics

import "fmt"

// NumPrimitives is the size of every primitive set.
const NumPrimitives = 8

// Primitive is a pair of wheel speeds, in revolutions per minute, held for one horizon.
type Primitive struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

func (p Primitive) String() string {
	return fmt.Sprintf("[%g, %g]", p.Left, p.Right)
}

// Primitives returns the eight primitives built from two wheel speeds. The order is fixed since
// it decides which of two equal-cost successors is accepted first. When a == b the set contains
// duplicates, which only cost redundant expansions.
func Primitives(a, b float64) []Primitive {
	return []Primitive{
		{0, a},
		{a, 0},
		{a, a},
		{0, b},
		{b, 0},
		{b, b},
		{a, b},
		{b, a},
	}
}
