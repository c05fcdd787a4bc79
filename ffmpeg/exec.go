package ffmpeg

import (
	"context"
	"fmt"
	"runtime"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/xpath"
)

// DefaultExecutableName is the bare name of the encoder binary on the
// current platform.
func DefaultExecutableName() string {
	name := "ffmpeg"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// LookupExecutable resolves the encoder binary (a bare name or a path) to
// an executable path. It is expected to be called once, before the config
// reaches the recorder.
func LookupExecutable(
	ctx context.Context,
	pathOrName string,
) (string, error) {
	if pathOrName == "" {
		pathOrName = DefaultExecutableName()
	}
	execPath, err := xpath.GetExecPath(pathOrName)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the encoder executable '%s': %w", pathOrName, err)
	}
	logger.Debugf(ctx, "resolved the encoder executable '%s' to '%s'", pathOrName, execPath)
	return execPath, nil
}
