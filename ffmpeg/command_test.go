package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/screenrec"
)

func baseConfig() screenrec.RecordingConfig {
	return screenrec.RecordingConfig{
		OutputPath: "/tmp/out.mp4",
		CaptureRegion: screenrec.Rectangle{
			X:      100,
			Y:      50,
			Width:  1280,
			Height: 720,
		},
		Mode:        screenrec.ModeScreen,
		Format:      screenrec.ContainerFormatMP4,
		EncoderPath: "ffmpeg",
	}
}

func TestScreenArgsLinux(t *testing.T) {
	require.Equal(t, []string{
		"-f", "x11grab",
		"-video_size", "1280x720",
		"-framerate", "30",
		"-i", ":0.0+100,50",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-y", "/tmp/out.mp4",
	}, argsForPlatform(baseConfig(), "linux"))
}

func TestScreenArgsWindows(t *testing.T) {
	require.Equal(t, []string{
		"-f", "gdigrab",
		"-framerate", "30",
		"-offset_x", "100",
		"-offset_y", "50",
		"-video_size", "1280x720",
		"-i", "desktop",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-y", "/tmp/out.mp4",
	}, argsForPlatform(baseConfig(), "windows"))
}

func TestScreenArgsWithAudio(t *testing.T) {
	cfg := baseConfig()
	cfg.AudioEnabled = true
	cfg.AudioDevice = screenrec.AudioDeviceDefault
	require.Equal(t, []string{
		"-f", "x11grab",
		"-video_size", "1280x720",
		"-framerate", "30",
		"-i", ":0.0+100,50",
		"-f", "alsa",
		"-i", "default",
		"-ac", "2",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-y", "/tmp/out.mp4",
	}, argsForPlatform(cfg, "linux"))
}

func TestAudioArgsWindows(t *testing.T) {
	cfg := baseConfig()
	cfg.AudioEnabled = true
	cfg.AudioDevice = "Microphone (Realtek Audio)"
	args := argsForPlatform(cfg, "windows")
	require.Contains(t, args, "audio=Microphone (Realtek Audio)")
	require.Contains(t, args, "-ac")
}

func TestCameraArgsLinux(t *testing.T) {
	cfg := baseConfig()
	cfg.Mode = screenrec.ModeCamera
	cfg.CameraDevice = "/dev/video0"
	require.Equal(t, []string{
		"-f", "v4l2",
		"-framerate", "30",
		"-video_size", "1280x720",
		"-i", "/dev/video0",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-y", "/tmp/out.mp4",
	}, argsForPlatform(cfg, "linux"))
}

func TestCameraArgsWindows(t *testing.T) {
	cfg := baseConfig()
	cfg.Mode = screenrec.ModeCamera
	cfg.CameraDevice = "Integrated Webcam"
	args := argsForPlatform(cfg, "windows")
	require.Contains(t, args, "dshow")
	require.Contains(t, args, "video=Integrated Webcam")
}

func TestWebMEncodingArgs(t *testing.T) {
	cfg := baseConfig()
	cfg.OutputPath = "/tmp/out.webm"
	cfg.Format = screenrec.ContainerFormatWebM
	args := argsForPlatform(cfg, "linux")
	require.Equal(t, []string{
		"-f", "x11grab",
		"-video_size", "1280x720",
		"-framerate", "30",
		"-i", ":0.0+100,50",
		"-c:v", "libvpx-vp9",
		"-b:v", "2M",
		"-y", "/tmp/out.webm",
	}, args)
}

func TestPictureInPictureArgs(t *testing.T) {
	cfg := baseConfig()
	cfg.Mode = screenrec.ModePictureInPicture
	cfg.CameraDevice = "/dev/video0"
	args := argsForPlatform(cfg, "linux")

	inputs := 0
	filters := 0
	for _, arg := range args {
		switch arg {
		case "-i":
			inputs++
		case "-filter_complex":
			filters++
		}
	}
	require.Equal(t, 2, inputs)
	require.Equal(t, 1, filters)

	require.Contains(t, args, "320x240")
	require.Contains(t, args,
		"[1:v]scale=320:240[pip];[0:v][pip]overlay=main_w-overlay_w-16:16")

	// the screen is always input 0, the camera input 1
	require.Equal(t, "x11grab", args[1])
	require.Less(t, indexOf(t, args, "x11grab"), indexOf(t, args, "v4l2"))
}

func TestOutputPathIsAlwaysLast(t *testing.T) {
	for mode := screenrec.ModeScreen; mode < screenrec.EndOfMode; mode++ {
		cfg := baseConfig()
		cfg.Mode = mode
		cfg.CameraDevice = "/dev/video0"
		cfg.AudioEnabled = true
		cfg.AudioDevice = screenrec.AudioDeviceDefault
		args := argsForPlatform(cfg, "linux")
		require.Equal(t, "-y", args[len(args)-2], "mode %s", mode)
		require.Equal(t, cfg.OutputPath, args[len(args)-1], "mode %s", mode)
	}
}

func TestArgsDeterministic(t *testing.T) {
	cfg := baseConfig()
	cfg.Mode = screenrec.ModePictureInPicture
	cfg.CameraDevice = "/dev/video0"
	cfg.AudioEnabled = true
	cfg.AudioDevice = screenrec.AudioDeviceDefault
	require.Equal(t, Args(cfg), Args(cfg))
}

func indexOf(t *testing.T, args []string, needle string) int {
	for i, arg := range args {
		if arg == needle {
			return i
		}
	}
	t.Fatalf("%q not found in %v", needle, args)
	return -1
}
