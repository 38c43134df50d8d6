package sheet

import "errors"

// ErrPosition is wrapped by any operation given an invalid Position.
var ErrPosition = errors.New("sheet: invalid position")

// ErrCircular is wrapped when a SetCell would introduce a circular
// dependency.
var ErrCircular = errors.New("sheet: circular dependency")
