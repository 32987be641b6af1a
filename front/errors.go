package front

import "errors"

// ErrEmptyFront indicates Ideal/Nadir/Worst was called on a front with no
// elements.
var ErrEmptyFront = errors.New("front: front is empty")
