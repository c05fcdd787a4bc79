package recorder

import (
	"time"

	"github.com/xaionaro-go/screenrec/process"
)

// session is the state of one recording. It is owned exclusively by the
// Recorder (under its lock), is populated on a successful start and is
// reset to the zero value on stop; nothing survives a stop.
type session struct {
	// proc is present iff a recording is active.
	proc process.Handle

	// startedAt is set exactly once per session, at successful spawn.
	startedAt time.Time

	// pausedAt is non-zero iff the session is currently paused.
	pausedAt time.Time

	// pausedTotal is the sum of all completed pause intervals; it only
	// grows at resume time.
	pausedTotal time.Duration
}

// elapsed is the recording time net of pauses: frozen while paused,
// growing in real time otherwise, zero while idle. The subtraction
// saturates at zero to guard against clock anomalies.
func (s *session) elapsed(now time.Time) time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	until := now
	if !s.pausedAt.IsZero() {
		until = s.pausedAt
	}
	d := until.Sub(s.startedAt) - s.pausedTotal
	if d < 0 {
		d = 0
	}
	return d
}
