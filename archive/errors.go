package archive

import "errors"

// ErrInvalidArgument indicates Insert was called on an archive
// constructed with capacity <= 0.
var ErrInvalidArgument = errors.New("archive: invalid argument")
