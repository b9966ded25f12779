package sim

import "errors"

// Domain errors for the driver loop.
var (
	// ErrNonPositiveDt indicates a zero or negative tick duration.
	ErrNonPositiveDt = errors.New("sim: tick duration must be positive")

	// ErrNonPositiveDuration indicates a zero or negative target duration.
	ErrNonPositiveDuration = errors.New("sim: duration must be positive")

	// ErrDiverged indicates validation caught a NaN or Inf in the state.
	ErrDiverged = errors.New("sim: state diverged (NaN or Inf detected)")
)
