// Package devices enumerates capture devices by shelling out to the
// platform listing tools. Everything here is best-effort: when a tool is
// missing or misbehaves we return what we have (possibly nothing) and
// never an error, so that callers can disable dependent features instead
// of failing.
package devices

import (
	"sort"
	"strings"

	"github.com/xaionaro-go/screenrec"
)

type Directory struct{}

var _ screenrec.DeviceDirectory = (*Directory)(nil)

func New() *Directory {
	return &Directory{}
}

// parseV4L2DeviceList parses `v4l2-ctl --list-devices` output:
//
//	HD Webcam: HD Webcam (usb-0000:00:14.0-1):
//	        /dev/video0
//	        /dev/video1
//
// Only the first device node of each name is taken; the rest are usually
// metadata nodes.
func parseV4L2DeviceList(out string) []screenrec.Device {
	var devices []screenrec.Device
	var currentName string
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " ") {
			currentName = strings.TrimSuffix(strings.TrimSpace(line), ":")
			continue
		}
		path := strings.TrimSpace(line)
		if !strings.HasPrefix(path, "/dev/video") || currentName == "" {
			continue
		}
		devices = append(devices, screenrec.Device{
			Name: currentName + " (" + path + ")",
			ID:   path,
		})
		currentName = ""
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices
}

// parseALSADeviceList parses `arecord -L` output: non-indented lines are
// PCM identifiers, the indented ones below them are descriptions (which we
// do not need, the identifier is what ffmpeg consumes).
func parseALSADeviceList(out string) []screenrec.Device {
	var devices []screenrec.Device
	for _, line := range strings.Split(out, "\n") {
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		id := strings.TrimSpace(line)
		if id == "null" || id == screenrec.AudioDeviceDefault {
			continue
		}
		devices = append(devices, screenrec.Device{
			Name: id,
			ID:   id,
		})
	}
	return devices
}

// parseDShowDeviceList parses the stderr of
// `ffmpeg -list_devices true -f dshow -i dummy`. Device names are quoted;
// dshow uses the name itself as the identifier.
func parseDShowDeviceList(out string, kind string) []screenrec.Device {
	var devices []screenrec.Device
	inSection := false
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "DirectShow video devices"):
			inSection = kind == "video"
			continue
		case strings.Contains(line, "DirectShow audio devices"):
			inSection = kind == "audio"
			continue
		}
		if !inSection || strings.Contains(line, "Alternative name") {
			continue
		}
		start := strings.Index(line, `"`)
		if start < 0 {
			continue
		}
		end := strings.Index(line[start+1:], `"`)
		if end <= 0 {
			continue
		}
		name := line[start+1 : start+1+end]
		devices = append(devices, screenrec.Device{
			Name: name,
			ID:   name,
		})
	}
	return devices
}
