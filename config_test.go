package screenrec

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

func TestRecordingConfigMarshalUnmarshal(t *testing.T) {
	cfg := &RecordingConfig{
		OutputPath: "/tmp/recording.webm",
		CaptureRegion: Rectangle{
			X:      100,
			Y:      50,
			Width:  1280,
			Height: 720,
		},
		Mode:         ModePictureInPicture,
		CameraDevice: "/dev/video0",
		AudioEnabled: true,
		AudioDevice:  AudioDeviceDefault,
		Format:       ContainerFormatWebM,
		EncoderPath:  "ffmpeg",
	}

	b, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var cfgDup RecordingConfig
	err = yaml.Unmarshal(b, &cfgDup)
	require.NoError(t, err)

	require.Equal(t, cfg, &cfgDup)

	b, err = json.Marshal(cfg)
	require.NoError(t, err)

	cfgDup = RecordingConfig{}
	err = json.Unmarshal(b, &cfgDup)
	require.NoError(t, err)

	require.Equal(t, cfg, &cfgDup)
}

func TestModeUnmarshalUnknown(t *testing.T) {
	var m Mode
	require.Error(t, m.UnmarshalJSON([]byte(`"webcam"`)))
}
