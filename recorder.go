package screenrec

import (
	"context"
	"time"
)

// Recorder owns the lifecycle of one external capture-and-encode process
// and the session clock bound to it.
//
// All operations are synchronous and are expected to be invoked from one
// logical thread of control (typically a UI event loop or an HTTP handler
// chain); the only concurrency is the external process itself.
type Recorder interface {
	Start(ctx context.Context, cfg RecordingConfig) error
	Stop(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error

	IsRecording(ctx context.Context) bool
	IsPaused(ctx context.Context) bool

	// Elapsed is the wall-clock recording time net of pauses. It is zero
	// while idle, frozen while paused and grows in real time otherwise.
	Elapsed(ctx context.Context) time.Duration
}

// Device is a reference to a camera or a microphone: a human-readable name
// and a backend identifier which is opaque to us and is forwarded into the
// encoder invocation verbatim.
type Device struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id"   yaml:"id"`
}

// DeviceDirectory enumerates capture devices, best-effort: when the
// underlying listing mechanism is unavailable it returns empty lists,
// it never fails.
type DeviceDirectory interface {
	ListVideoDevices(ctx context.Context) []Device
	ListAudioDevices(ctx context.Context) []Device
}

// Monitor is a display descriptor in the virtual display space.
type Monitor struct {
	Name   string `json:"name"   yaml:"name"`
	Width  uint   `json:"width"  yaml:"width"`
	Height uint   `json:"height" yaml:"height"`
	X      int    `json:"x"      yaml:"x"`
	Y      int    `json:"y"      yaml:"y"`
}

// MonitorDirectory enumerates displays. The returned list is guaranteed to
// be non-empty: implementations fall back to a synthetic default descriptor
// when the platform provides none.
type MonitorDirectory interface {
	ListMonitors(ctx context.Context) []Monitor
}
