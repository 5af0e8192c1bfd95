package tilemapping

import "errors"

// ErrPrecondition is the root of every contract-violation error in the
// module: unsorted automaton input, overwriting an occupied square, bad
// notation. Callers are expected to abort the current turn on it rather
// than retry.
var ErrPrecondition = errors.New("precondition violation")
