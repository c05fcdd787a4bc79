package screenrec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rectangle is a capture region in pixels, relative to the virtual
// display space.
type Rectangle struct {
	X      int  `json:"x"      yaml:"x"`
	Y      int  `json:"y"      yaml:"y"`
	Width  uint `json:"width"  yaml:"width"`
	Height uint `json:"height" yaml:"height"`
}

// RecordingConfig is the full description of one recording session. It is
// expected to be fully resolved (no placeholder fields) before it is passed
// to Recorder.Start.
type RecordingConfig struct {
	OutputPath    string          `json:"output_path"              yaml:"output_path"`
	CaptureRegion Rectangle       `json:"capture_region"           yaml:"capture_region"`
	Mode          Mode            `json:"mode"                     yaml:"mode"`
	CameraDevice  string          `json:"camera_device,omitempty"  yaml:"camera_device,omitempty"`
	AudioEnabled  bool            `json:"audio_enabled,omitempty"  yaml:"audio_enabled,omitempty"`
	AudioDevice   string          `json:"audio_device,omitempty"   yaml:"audio_device,omitempty"`
	Format        ContainerFormat `json:"format"                   yaml:"format"`
	EncoderPath   string          `json:"encoder_path,omitempty"   yaml:"encoder_path,omitempty"`
}

// AudioDeviceDefault is the sentinel device identifier meaning "whatever
// the platform considers the default capture device".
const AudioDeviceDefault = "default"

type Mode uint

const (
	ModeUndefined = Mode(iota)
	ModeScreen
	ModeCamera
	ModePictureInPicture
	EndOfMode
)

func (m Mode) String() string {
	switch m {
	case ModeUndefined:
		return "<undefined>"
	case ModeScreen:
		return "screen"
	case ModeCamera:
		return "camera"
	case ModePictureInPicture:
		return "picture_in_picture"
	}
	return fmt.Sprintf("unexpected_mode_id_%d", uint(m))
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	if m == nil {
		return fmt.Errorf("Mode is nil")
	}
	return m.parse(strings.Trim(string(b), `"`))
}

func (m Mode) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(m.String())
}

func (m *Mode) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal a Mode to a string: %w", err)
	}
	return m.parse(s)
}

// Set and Type make *Mode usable as a pflag.Value.
func (m *Mode) Set(s string) error {
	return m.parse(s)
}

func (m Mode) Type() string {
	return "mode"
}

func (m *Mode) parse(s string) error {
	s = strings.ToLower(s)
	for cmp := ModeUndefined; cmp < EndOfMode; cmp++ {
		if cmp.String() == s {
			*m = cmp
			return nil
		}
	}
	return fmt.Errorf("unknown value of the Mode: '%s'", s)
}

// ContainerFormat selects the codec/bitrate policy of the output file.
// Anything that is not WebM is treated as the MP4 default by the command
// builder.
type ContainerFormat uint

const (
	ContainerFormatUndefined = ContainerFormat(iota)
	ContainerFormatMP4
	ContainerFormatWebM
	EndOfContainerFormat
)

func (f ContainerFormat) String() string {
	switch f {
	case ContainerFormatUndefined:
		return "<undefined>"
	case ContainerFormatMP4:
		return "mp4"
	case ContainerFormatWebM:
		return "webm"
	}
	return fmt.Sprintf("unexpected_container_format_id_%d", uint(f))
}

func (f ContainerFormat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *ContainerFormat) UnmarshalJSON(b []byte) error {
	if f == nil {
		return fmt.Errorf("ContainerFormat is nil")
	}
	return f.parse(strings.Trim(string(b), `"`))
}

func (f ContainerFormat) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(f.String())
}

func (f *ContainerFormat) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal a ContainerFormat to a string: %w", err)
	}
	return f.parse(s)
}

// Set and Type make *ContainerFormat usable as a pflag.Value.
func (f *ContainerFormat) Set(s string) error {
	return f.parse(s)
}

func (f ContainerFormat) Type() string {
	return "format"
}

func (f *ContainerFormat) parse(s string) error {
	s = strings.ToLower(s)
	for cmp := ContainerFormatUndefined; cmp < EndOfContainerFormat; cmp++ {
		if cmp.String() == s {
			*f = cmp
			return nil
		}
	}
	return fmt.Errorf("unknown value of the ContainerFormat: '%s'", s)
}
