//go:build !windows
// +build !windows

package devices

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/screenrec"
)

func (d *Directory) ListVideoDevices(
	ctx context.Context,
) []screenrec.Device {
	var devices []screenrec.Device

	out, err := exec.CommandContext(ctx, "v4l2-ctl", "--list-devices").Output()
	if err == nil {
		devices = parseV4L2DeviceList(string(out))
	} else {
		logger.Debugf(ctx, "unable to run v4l2-ctl: %v", err)
	}

	if len(devices) == 0 {
		devices = scanVideoDeviceNodes(ctx)
	}
	return devices
}

// scanVideoDeviceNodes is the fallback when v4l2-ctl is unavailable: any
// /dev/video* node is offered as-is.
func scanVideoDeviceNodes(
	ctx context.Context,
) []screenrec.Device {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		logger.Debugf(ctx, "unable to read /dev: %v", err)
		return nil
	}
	var devices []screenrec.Device
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "video") {
			continue
		}
		path := "/dev/" + entry.Name()
		devices = append(devices, screenrec.Device{
			Name: path,
			ID:   path,
		})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices
}

func (d *Directory) ListAudioDevices(
	ctx context.Context,
) []screenrec.Device {
	// the default device always exists as far as ffmpeg is concerned
	devices := []screenrec.Device{{
		Name: "Default",
		ID:   screenrec.AudioDeviceDefault,
	}}

	out, err := exec.CommandContext(ctx, "arecord", "-L").Output()
	if err != nil {
		logger.Debugf(ctx, "unable to run arecord: %v", err)
		return devices
	}
	return append(devices, parseALSADeviceList(string(out))...)
}
