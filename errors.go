package braille

import "errors"

// Errors returned by translation functions. Callers may test for them with
// errors.Is.
var (
	// ErrOutputTooSmall signals that an output or intermediate buffer ran full.
	// Results returned alongside it are consistent up to the last complete word.
	ErrOutputTooSmall = errors.New("braille: output buffer too small")

	// ErrNoSuchTable signals an unresolvable table reference.
	ErrNoSuchTable = errors.New("braille: no such table")

	// ErrMalformedProgram signals a pass program with an unknown instruction.
	ErrMalformedProgram = errors.New("braille: malformed pass program")

	// ErrInvalidArgument signals unusable input, e.g. mapping arrays which are
	// too short.
	ErrInvalidArgument = errors.New("braille: invalid argument")
)
