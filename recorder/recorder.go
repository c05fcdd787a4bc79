// Package recorder implements the recording session controller: it spawns
// the external encoder process, pauses/resumes it where the platform allows
// that, stops it gracefully (escalating to a kill after a grace period) and
// keeps the session clock.
package recorder

import (
	"context"
	"time"

	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/screenrec"
	"github.com/xaionaro-go/screenrec/clock"
	"github.com/xaionaro-go/screenrec/ffmpeg"
	"github.com/xaionaro-go/screenrec/internal"
	"github.com/xaionaro-go/screenrec/process"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
)

// GracefulStopTimeout is how long Stop waits for the encoder to finalize
// the output container before killing it. Killing outright risks an
// unplayable file, so the encoder always gets this chance to flush its
// trailers; but it is never allowed to hang the caller indefinitely.
const GracefulStopTimeout = 5 * time.Second

type Recorder struct {
	Locker            xsync.Mutex
	ProcessController process.Controller
	Clock             clock.Clock

	session session
}

var _ screenrec.Recorder = (*Recorder)(nil)

func New(opts ...Option) *Recorder {
	r := &Recorder{
		ProcessController: process.NewController(),
		Clock:             clock.Get(),
	}
	for _, opt := range opts {
		opt.apply(r)
	}
	return r
}

func (r *Recorder) Start(
	ctx context.Context,
	cfg screenrec.RecordingConfig,
) (_err error) {
	logger.Debugf(ctx, "Start(ctx, %#+v)", cfg)
	defer func() { logger.Debugf(ctx, "/Start(ctx): %v", _err) }()
	return xsync.DoA2R1(ctx, &r.Locker, r.startLocked, ctx, cfg)
}

func (r *Recorder) startLocked(
	ctx context.Context,
	cfg screenrec.RecordingConfig,
) error {
	if r.session.proc != nil {
		return screenrec.ErrAlreadyActive{}
	}

	args := ffmpeg.Args(cfg)
	proc, err := r.ProcessController.Spawn(ctx, cfg.EncoderPath, args...)
	if err != nil {
		return screenrec.ErrSpawnFailed{Err: err}
	}

	r.session = session{
		proc:      proc,
		startedAt: r.Clock.Now(),
	}
	return nil
}

func (r *Recorder) Stop(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "Stop(ctx)")
	defer func() { logger.Debugf(ctx, "/Stop(ctx): %v", _err) }()
	return xsync.DoA1R1(ctx, &r.Locker, r.stopLocked, ctx)
}

func (r *Recorder) stopLocked(
	ctx context.Context,
) error {
	proc := r.session.proc
	if proc == nil {
		return screenrec.ErrNotActive{}
	}
	wasPaused := !r.session.pausedAt.IsZero()

	// the handle is moved out of the session before any signaling, so no
	// other code path can act on a process that is being torn down
	r.session = session{}

	// the teardown must run to completion even if the caller's context
	// gets canceled mid-way
	ctx = xcontext.DetachDone(ctx)

	if wasPaused {
		// a suspended process cannot react to the stop request, let it
		// run again first
		if err := proc.Resume(ctx); err != nil {
			logger.Debugf(ctx, "unable to resume the process before stopping it: %v", err)
		}
	}

	if err := proc.RequestStop(ctx); err != nil {
		logger.Debugf(ctx, "the graceful stop request failed: %v", err)
	}
	if !proc.WaitExited(ctx, GracefulStopTimeout) {
		logger.Warnf(ctx, "the encoder process did not exit within %s, killing it", GracefulStopTimeout)
		// a best-effort kill is still a successful stop from the caller's
		// perspective: the output file may well be (partially) valid, and
		// there is no actionable recovery path anyway
		errmon.ObserveErrorCtx(ctx, proc.Kill(ctx))
	}
	return nil
}

func (r *Recorder) Pause(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "Pause(ctx)")
	defer func() { logger.Debugf(ctx, "/Pause(ctx): %v", _err) }()
	return xsync.DoA1R1(ctx, &r.Locker, r.pauseLocked, ctx)
}

func (r *Recorder) pauseLocked(
	ctx context.Context,
) error {
	if r.session.proc == nil {
		return screenrec.ErrNotActive{}
	}
	if !r.session.pausedAt.IsZero() {
		return screenrec.ErrAlreadyPaused{}
	}
	if err := r.session.proc.Suspend(ctx); err != nil {
		return err
	}
	r.session.pausedAt = r.Clock.Now()
	return nil
}

func (r *Recorder) Resume(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "Resume(ctx)")
	defer func() { logger.Debugf(ctx, "/Resume(ctx): %v", _err) }()
	return xsync.DoA1R1(ctx, &r.Locker, r.resumeLocked, ctx)
}

func (r *Recorder) resumeLocked(
	ctx context.Context,
) error {
	if r.session.proc == nil {
		return screenrec.ErrNotActive{}
	}
	if r.session.pausedAt.IsZero() {
		return screenrec.ErrNotPaused{}
	}
	if err := r.session.proc.Resume(ctx); err != nil {
		return err
	}
	// the completed pause interval is folded in here, at resume time;
	// this is the only place the accumulator grows
	r.session.pausedTotal += r.Clock.Now().Sub(r.session.pausedAt)
	r.session.pausedAt = time.Time{}
	return nil
}

func (r *Recorder) IsRecording(
	ctx context.Context,
) bool {
	return xsync.DoR1(ctx, &r.Locker, func() bool {
		return r.session.proc != nil
	})
}

func (r *Recorder) IsPaused(
	ctx context.Context,
) bool {
	return xsync.DoR1(ctx, &r.Locker, func() bool {
		internal.Assert(ctx, r.session.pausedAt.IsZero() || r.session.proc != nil, "paused implies recording")
		return !r.session.pausedAt.IsZero()
	})
}

func (r *Recorder) Elapsed(
	ctx context.Context,
) time.Duration {
	return xsync.DoR1(ctx, &r.Locker, func() time.Duration {
		return r.session.elapsed(r.Clock.Now())
	})
}
