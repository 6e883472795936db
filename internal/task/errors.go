package task

import "errors"

// ErrDecode is wrapped by any error produced while parsing a key or value
// that does not round-trip through the codecs in this package.
var ErrDecode = errors.New("task: decode error")

// ErrInvalidWorkerName is returned by WorkerName.Validate.
var ErrInvalidWorkerName = errors.New("task: invalid worker name")
