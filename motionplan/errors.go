package motionplan

import "github.com/pkg/errors"

var (
	// ErrNoPath is returned when a path is requested from a search that did not reach the goal.
	ErrNoPath = errors.New("motion planner failed to find path")

	// ErrSearchRunning is returned when a result is requested before the search finished.
	ErrSearchRunning = errors.New("search has not finished")
)

// NewPlannerFailedError returns an error which describes that no path to the goal was found
// after the given number of expansions.
func NewPlannerFailedError(expansions int) error {
	return errors.Wrapf(ErrNoPath, "frontier exhausted after %d expansions", expansions)
}

func newBadRequestError(msg string, args ...interface{}) error {
	return errors.Wrap(errors.Errorf(msg, args...), "invalid plan request")
}
