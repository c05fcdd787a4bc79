//go:build windows
// +build windows

package main

import (
	"os"
)

// There is no user signal to toggle pausing with on Windows (and no pause
// support either); a nil channel just never fires.
func notifyPauseSignal() <-chan os.Signal {
	return nil
}
