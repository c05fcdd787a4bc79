//go:build windows
// +build windows

package process

import (
	"os"

	"github.com/xaionaro-go/screenrec"
)

// There is no polite termination signal on Windows; the stop character on
// stdin carries the graceful-stop request instead.
func terminateProcess(p *os.Process) error {
	return nil
}

func suspendProcess(p *os.Process) error {
	return screenrec.ErrUnsupportedOperation{Op: "pause"}
}

func resumeProcess(p *os.Process) error {
	return screenrec.ErrUnsupportedOperation{Op: "resume"}
}
