package ir

import "fmt"

type BuildError struct {
	message string
}

func newBuildError(message string) *BuildError {
	return &BuildError{
		message: message,
	}
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build error: %s", e.message)
}

var (
	buildErrInvalidInt   = newBuildError("not a valid integer")
	buildErrInvalidFloat = newBuildError("not a valid number")
)
