package core

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed is returned when no stable, solvable board could be
	// produced within the configured number of attempts.
	ErrGenerationFailed = errors.New("board generation failed")

	// ErrInvariant marks an engine-state error. The engine refuses further
	// moves once one has been reported.
	ErrInvariant = errors.New("engine invariant violated")

	// ErrInvalidLevel is returned by StartLevel for unusable level definitions.
	ErrInvalidLevel = errors.New("invalid level")
)

// EngineError carries a machine-readable code for engine failures.
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e EngineError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the sentinel the error belongs to.
func (e EngineError) Unwrap() error {
	return e.Err
}

func invariantError(code, msg string) error {
	return EngineError{Code: code, Message: msg, Err: ErrInvariant}
}

func levelError(code, msg string) error {
	return EngineError{Code: code, Message: msg, Err: ErrInvalidLevel}
}
