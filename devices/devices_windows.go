//go:build windows
// +build windows

package devices

import (
	"context"
	"os/exec"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/screenrec"
)

func (d *Directory) ListVideoDevices(
	ctx context.Context,
) []screenrec.Device {
	return listDShowDevices(ctx, "video")
}

func (d *Directory) ListAudioDevices(
	ctx context.Context,
) []screenrec.Device {
	return listDShowDevices(ctx, "audio")
}

func listDShowDevices(
	ctx context.Context,
	kind string,
) []screenrec.Device {
	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-list_devices", "true",
		"-f", "dshow",
		"-i", "dummy",
	)
	// the device list goes to stderr, and ffmpeg exits non-zero because of
	// the dummy input; both are expected
	out, err := cmd.CombinedOutput()
	if len(out) == 0 {
		logger.Debugf(ctx, "unable to list dshow devices: %v", err)
		return nil
	}
	return parseDShowDeviceList(string(out), kind)
}
