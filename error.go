package screenrec

import (
	"fmt"
)

type ErrAlreadyActive struct{}

func (ErrAlreadyActive) Error() string { return "a recording is already in progress" }

type ErrNotActive struct{}

func (ErrNotActive) Error() string { return "no recording is in progress" }

type ErrAlreadyPaused struct{}

func (ErrAlreadyPaused) Error() string { return "the recording is already paused" }

type ErrNotPaused struct{}

func (ErrNotPaused) Error() string { return "the recording is not paused" }

// ErrSpawnFailed means the external encoder process could not be launched
// (missing executable, permission denied, arguments rejected at exec time).
type ErrSpawnFailed struct {
	Err error
}

func (e ErrSpawnFailed) Error() string {
	return fmt.Sprintf("unable to launch the encoder process: %v", e.Err)
}

func (e ErrSpawnFailed) Unwrap() error {
	return e.Err
}

// ErrUnsupportedOperation means the platform lacks the signaling primitive
// required for the requested operation (e.g. suspending a process on
// Windows).
type ErrUnsupportedOperation struct {
	Op string
}

func (e ErrUnsupportedOperation) Error() string {
	return fmt.Sprintf("'%s' is not supported on this platform", e.Op)
}
