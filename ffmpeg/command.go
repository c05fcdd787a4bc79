// Package ffmpeg renders a screenrec.RecordingConfig into the exact
// argument list of an ffmpeg invocation.
package ffmpeg

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/xaionaro-go/screenrec"
)

const (
	// FrameRate is the capture framerate of every video input.
	FrameRate = 30

	// The picture-in-picture frame size and its inset from the top-right
	// corner of the primary frame are policy, not configuration.
	pipWidth  = 320
	pipHeight = 240
	pipInset  = 16

	x11Display = ":0.0"
)

// Args is a pure mapping: the same config always produces the same argument
// sequence. It performs no I/O and no validation; a nonsensical device or
// path surfaces only when the process is spawned.
func Args(cfg screenrec.RecordingConfig) []string {
	return argsForPlatform(cfg, runtime.GOOS)
}

func argsForPlatform(cfg screenrec.RecordingConfig, goos string) []string {
	var args []string

	switch cfg.Mode {
	case screenrec.ModeCamera:
		args = append(args, cameraInputArgs(cfg.CameraDevice, cfg.CaptureRegion.Width, cfg.CaptureRegion.Height, goos)...)
	default:
		// the screen is the primary video source for both Screen and
		// PictureInPicture
		args = append(args, screenInputArgs(cfg.CaptureRegion, goos)...)
		if cfg.Mode == screenrec.ModePictureInPicture {
			args = append(args, cameraInputArgs(cfg.CameraDevice, pipWidth, pipHeight, goos)...)
			args = append(args, "-filter_complex", pipOverlayFilter())
		}
	}

	if cfg.AudioEnabled {
		args = append(args, audioInputArgs(cfg.AudioDevice, goos)...)
		// heterogeneous devices report all kinds of channel layouts,
		// force stereo for consistency
		args = append(args, "-ac", "2")
	}

	args = append(args, encodingArgs(cfg.Format)...)
	args = append(args, "-y", cfg.OutputPath)
	return args
}

func screenInputArgs(reg screenrec.Rectangle, goos string) []string {
	if goos == "windows" {
		return []string{
			"-f", "gdigrab",
			"-framerate", strconv.Itoa(FrameRate),
			"-offset_x", strconv.Itoa(reg.X),
			"-offset_y", strconv.Itoa(reg.Y),
			"-video_size", fmt.Sprintf("%dx%d", reg.Width, reg.Height),
			"-i", "desktop",
		}
	}
	return []string{
		"-f", "x11grab",
		"-video_size", fmt.Sprintf("%dx%d", reg.Width, reg.Height),
		"-framerate", strconv.Itoa(FrameRate),
		"-i", fmt.Sprintf("%s+%d,%d", x11Display, reg.X, reg.Y),
	}
}

func cameraInputArgs(device string, width, height uint, goos string) []string {
	if goos == "windows" {
		return []string{
			"-f", "dshow",
			"-framerate", strconv.Itoa(FrameRate),
			"-video_size", fmt.Sprintf("%dx%d", width, height),
			"-i", "video=" + device,
		}
	}
	return []string{
		"-f", "v4l2",
		"-framerate", strconv.Itoa(FrameRate),
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-i", device,
	}
}

func audioInputArgs(device string, goos string) []string {
	if goos == "windows" {
		return []string{"-f", "dshow", "-i", "audio=" + device}
	}
	return []string{"-f", "alsa", "-i", device}
}

// pipOverlayFilter composites the camera input over the screen input at a
// fixed inset from the top-right corner of the primary frame.
func pipOverlayFilter() string {
	return fmt.Sprintf(
		"[1:v]scale=%d:%d[pip];[0:v][pip]overlay=main_w-overlay_w-%d:%d",
		pipWidth, pipHeight,
		pipInset, pipInset,
	)
}

func encodingArgs(format screenrec.ContainerFormat) []string {
	switch format {
	case screenrec.ContainerFormatWebM:
		return []string{"-c:v", "libvpx-vp9", "-b:v", "2M"}
	default:
		// yuv420p is what every downstream player copes with
		return []string{
			"-c:v", "libx264",
			"-preset", "ultrafast",
			"-crf", "23",
			"-pix_fmt", "yuv420p",
		}
	}
}
