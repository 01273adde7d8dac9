package errors

import (
	"errors"
)

// NotFound signals a missing row. Storage returns it; services decide whether
// that means a default value, a nil result or a failure.
var NotFound = errors.New("Not found")
