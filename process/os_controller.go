package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	child_process_manager "github.com/AgustinSRG/go-child-process-manager"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/observability"
)

// StopCharacter is the single byte written to the process's stdin to
// request a graceful shutdown; common CLI encoders understand it as
// "finalize and exit".
const StopCharacter = 'q'

// OSController spawns real OS processes.
type OSController struct{}

var _ Controller = (*OSController)(nil)

func NewController() *OSController {
	return &OSController{}
}

func (OSController) Spawn(
	ctx context.Context,
	name string,
	args ...string,
) (_ Handle, _err error) {
	logger.Debugf(ctx, "Spawn(ctx, '%s', %v)", name, args)
	defer func() { logger.Debugf(ctx, "/Spawn(ctx, '%s'): %v", name, _err) }()

	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize an stdin pipe: %w", err)
	}
	if observability.LogLevelFilter.GetLevel() >= logger.LevelTrace {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}
	err = child_process_manager.ConfigureCommand(cmd)
	errmon.ObserveErrorCtx(ctx, err)
	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("unable to start '%s': %w", name, err)
	}
	err = child_process_manager.AddChildProcess(cmd.Process)
	if err != nil {
		if runtime.GOOS == "windows" {
			// this is actually an error, but I have no idea how to fix it, so demoting to a debug message
			logger.Debugf(ctx, "unable to register the command to be auto-killed: %v", err)
		} else {
			logger.Errorf(ctx, "unable to register the command to be auto-killed: %v", err)
		}
	}

	h := &osHandle{
		Cmd:      cmd,
		Stdin:    stdin,
		ExitedCh: make(chan struct{}),
	}
	observability.Go(ctx, func(ctx context.Context) {
		err := cmd.Wait()
		logger.Debugf(ctx, "the process '%s' (PID: %d) exited: %v", name, cmd.Process.Pid, err)
		close(h.ExitedCh)
	})
	return h, nil
}

type osHandle struct {
	Cmd      *exec.Cmd
	Stdin    io.WriteCloser
	ExitedCh chan struct{}
}

var _ Handle = (*osHandle)(nil)

func (h *osHandle) RequestStop(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "RequestStop(ctx): PID: %d", h.Cmd.Process.Pid)
	defer func() { logger.Debugf(ctx, "/RequestStop(ctx): %v", _err) }()

	var result *multierror.Error
	if err := terminateProcess(h.Cmd.Process); err != nil {
		result = multierror.Append(result, fmt.Errorf("unable to send the termination signal: %w", err))
	}
	if _, err := h.Stdin.Write([]byte{StopCharacter}); err != nil {
		result = multierror.Append(result, fmt.Errorf("unable to write the stop character to stdin: %w", err))
	}
	return result.ErrorOrNil()
}

func (h *osHandle) Suspend(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "Suspend(ctx): PID: %d", h.Cmd.Process.Pid)
	defer func() { logger.Debugf(ctx, "/Suspend(ctx): %v", _err) }()
	return suspendProcess(h.Cmd.Process)
}

func (h *osHandle) Resume(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "Resume(ctx): PID: %d", h.Cmd.Process.Pid)
	defer func() { logger.Debugf(ctx, "/Resume(ctx): %v", _err) }()
	return resumeProcess(h.Cmd.Process)
}

func (h *osHandle) WaitExited(
	ctx context.Context,
	timeout time.Duration,
) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-h.ExitedCh:
		return true
	case <-t.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *osHandle) Kill(
	ctx context.Context,
) error {
	if err := h.Cmd.Process.Kill(); err != nil {
		return fmt.Errorf("unable to kill the process (PID: %d): %w", h.Cmd.Process.Pid, err)
	}
	// the waiter goroutine reaps the process; by the time the channel is
	// closed the zombie is gone
	<-h.ExitedCh
	return nil
}
