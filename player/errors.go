package player

import (
	"errors"
	"fmt"
)

var (
	// ErrInit reports that the engine instance or player could not be created.
	ErrInit = errors.New("engine initialisation failed")

	// ErrReleased is returned by commands issued after Release.
	ErrReleased = errors.New("media player has been released")

	// ErrNoSurface is returned by PlayMedia when no video surface has been set.
	ErrNoSurface = errors.New("a video surface must be set before playing media")

	// ErrCommandFailed is wrapped by every CommandError.
	ErrCommandFailed = errors.New("engine command failed")

	// ErrSnapshotDir is wrapped by every SnapshotDirError.
	ErrSnapshotDir = errors.New("snapshot directory could not be created")

	// ErrDispatcherClosed is returned when a notification is submitted after shutdown began.
	ErrDispatcherClosed = errors.New("event dispatcher is closed")
)

// InitError describes which construction stage failed.
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInit, e.Stage, e.Err)
}

func (e *InitError) Unwrap() []error {
	return []error{ErrInit, e.Err}
}

// CommandError carries the non-zero status code returned by an engine command.
type CommandError struct {
	Op   string
	Code int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s returned %d", ErrCommandFailed, e.Op, e.Code)
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// SnapshotDirError reports that the parent directory of a snapshot could not be created.
// The engine is not called in that case.
type SnapshotDirError struct {
	Dir string
	Err error
}

func (e *SnapshotDirError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSnapshotDir, e.Dir, e.Err)
}

func (e *SnapshotDirError) Unwrap() []error {
	return []error{ErrSnapshotDir, e.Err}
}
