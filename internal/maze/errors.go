package maze

import "errors"

// ErrInvalidDimensions is returned when the requested or configured
// dimensions cannot produce a maze.
var ErrInvalidDimensions = errors.New("invalid maze dimensions")
