package domain

import "errors"

// ErrInvalidInput marks caller errors detected before any work starts, such as
// a repository path that does not exist or is not a directory.
var ErrInvalidInput = errors.New("invalid input")
