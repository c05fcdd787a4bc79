// Package process owns spawning and signaling of the external encoder
// process. The capabilities differ per platform (e.g. there is no way to
// suspend a process on Windows), so everything is expressed through the
// Controller/Handle abstraction and missing capabilities are reported as
// screenrec.ErrUnsupportedOperation instead of being compiled away.
package process

import (
	"context"
	"time"
)

// Controller spawns external processes and hands out Handles to them.
type Controller interface {
	Spawn(ctx context.Context, name string, args ...string) (Handle, error)
}

// Handle is the exclusive handle of one spawned process.
type Handle interface {
	// RequestStop asks the process to finalize its output and exit,
	// best-effort: a termination signal where the platform has one, plus
	// the stop character on the process's stdin.
	RequestStop(ctx context.Context) error

	// Suspend stops the process the stop-the-world way (not merely muting
	// its input).
	Suspend(ctx context.Context) error

	// Resume continues a previously suspended process.
	Resume(ctx context.Context) error

	// WaitExited blocks until the process exits or the timeout passes,
	// and reports whether it exited.
	WaitExited(ctx context.Context, timeout time.Duration) bool

	// Kill forcibly terminates the process and reaps it.
	Kill(ctx context.Context) error
}
