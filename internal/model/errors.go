package model

import "errors"

// ErrNotFound signals an update, delete, or lookup against an id that is not
// in the collection. It is an expected outcome, not a failure.
var ErrNotFound = errors.New("not found")
