package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/screenrec"
)

type fakeRecorder struct {
	recording bool
	paused    bool
	elapsed   time.Duration
	lastCfg   screenrec.RecordingConfig
	pauseErr  error
}

var _ screenrec.Recorder = (*fakeRecorder)(nil)

func (r *fakeRecorder) Start(ctx context.Context, cfg screenrec.RecordingConfig) error {
	if r.recording {
		return screenrec.ErrAlreadyActive{}
	}
	r.recording = true
	r.lastCfg = cfg
	return nil
}

func (r *fakeRecorder) Stop(ctx context.Context) error {
	if !r.recording {
		return screenrec.ErrNotActive{}
	}
	r.recording = false
	r.paused = false
	return nil
}

func (r *fakeRecorder) Pause(ctx context.Context) error {
	switch {
	case !r.recording:
		return screenrec.ErrNotActive{}
	case r.pauseErr != nil:
		return r.pauseErr
	case r.paused:
		return screenrec.ErrAlreadyPaused{}
	}
	r.paused = true
	return nil
}

func (r *fakeRecorder) Resume(ctx context.Context) error {
	switch {
	case !r.recording:
		return screenrec.ErrNotActive{}
	case !r.paused:
		return screenrec.ErrNotPaused{}
	}
	r.paused = false
	return nil
}

func (r *fakeRecorder) IsRecording(ctx context.Context) bool { return r.recording }
func (r *fakeRecorder) IsPaused(ctx context.Context) bool    { return r.paused }
func (r *fakeRecorder) Elapsed(ctx context.Context) time.Duration {
	return r.elapsed
}

type fakeDevices struct{}

func (fakeDevices) ListVideoDevices(ctx context.Context) []screenrec.Device {
	return []screenrec.Device{{Name: "Integrated Camera", ID: "/dev/video0"}}
}

func (fakeDevices) ListAudioDevices(ctx context.Context) []screenrec.Device {
	return []screenrec.Device{{Name: "default", ID: "default"}}
}

type fakeMonitors struct{}

func (fakeMonitors) ListMonitors(ctx context.Context) []screenrec.Monitor {
	return []screenrec.Monitor{
		{Name: "Display 0 (2560x1440)", Width: 2560, Height: 1440, X: 0, Y: 0},
		{Name: "Display 1 (1920x1080)", Width: 1920, Height: 1080, X: 2560, Y: 0},
	}
}

func newTestServer(t *testing.T, rec *fakeRecorder) *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(rec, fakeDevices{}, fakeMonitors{}, Config{
		DefaultEncoderPath: "/usr/bin/ffmpeg",
		OutputDir:          t.TempDir(),
	})
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}

func TestRecordingLifecycleOverHTTP(t *testing.T) {
	rec := &fakeRecorder{}
	srv := newTestServer(t, rec)

	w := do(t, srv, http.MethodPost, "/recording", `{"mode":"screen","format":"mp4"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var started startResponse
	decode(t, w, &started)
	require.NotEmpty(t, started.SessionID)
	require.True(t, strings.HasSuffix(started.OutputPath, ".mp4"), started.OutputPath)

	w = do(t, srv, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status statusResponse
	decode(t, w, &status)
	require.True(t, status.IsRecording)
	require.False(t, status.IsPaused)
	require.Equal(t, started.SessionID, status.SessionID)
	require.Equal(t, started.OutputPath, status.OutputPath)

	w = do(t, srv, http.MethodPost, "/recording/pause", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, srv, http.MethodPost, "/recording/resume", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodDelete, "/recording", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stopped map[string]string
	decode(t, w, &stopped)
	require.Equal(t, started.OutputPath, stopped["output_path"])

	w = do(t, srv, http.MethodGet, "/status", "")
	decode(t, w, &status)
	require.False(t, status.IsRecording)
	require.Empty(t, status.SessionID)
}

func TestStartAppliesDefaults(t *testing.T) {
	rec := &fakeRecorder{}
	srv := newTestServer(t, rec)

	w := do(t, srv, http.MethodPost, "/recording", `{"audio_enabled":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cfg := rec.lastCfg
	require.Equal(t, screenrec.ModeScreen, cfg.Mode)
	require.Equal(t, screenrec.ContainerFormatMP4, cfg.Format)
	require.Equal(t, "/usr/bin/ffmpeg", cfg.EncoderPath)
	require.Equal(t, screenrec.AudioDeviceDefault, cfg.AudioDevice)
	// the primary monitor's geometry fills an unset capture region
	require.Equal(t, screenrec.Rectangle{X: 0, Y: 0, Width: 2560, Height: 1440}, cfg.CaptureRegion)
}

func TestWrongStateMapsToConflict(t *testing.T) {
	rec := &fakeRecorder{}
	srv := newTestServer(t, rec)

	require.Equal(t, http.StatusConflict,
		do(t, srv, http.MethodDelete, "/recording", "").Code)
	require.Equal(t, http.StatusConflict,
		do(t, srv, http.MethodPost, "/recording/pause", "").Code)

	w := do(t, srv, http.MethodPost, "/recording", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, http.StatusConflict,
		do(t, srv, http.MethodPost, "/recording", `{}`).Code)
	require.Equal(t, http.StatusConflict,
		do(t, srv, http.MethodPost, "/recording/resume", "").Code)
}

func TestUnsupportedPauseMapsToNotImplemented(t *testing.T) {
	rec := &fakeRecorder{pauseErr: screenrec.ErrUnsupportedOperation{Op: "pause"}}
	srv := newTestServer(t, rec)

	require.Equal(t, http.StatusCreated,
		do(t, srv, http.MethodPost, "/recording", `{}`).Code)
	require.Equal(t, http.StatusNotImplemented,
		do(t, srv, http.MethodPost, "/recording/pause", "").Code)
}

func TestMalformedStartRequest(t *testing.T) {
	srv := newTestServer(t, &fakeRecorder{})
	require.Equal(t, http.StatusBadRequest,
		do(t, srv, http.MethodPost, "/recording", `{"mode":`).Code)
	require.Equal(t, http.StatusBadRequest,
		do(t, srv, http.MethodPost, "/recording", `{"mode":"holographic"}`).Code)
}

func TestDevicesAndMonitors(t *testing.T) {
	srv := newTestServer(t, &fakeRecorder{})

	w := do(t, srv, http.MethodGet, "/devices", "")
	require.Equal(t, http.StatusOK, w.Code)
	var devices map[string][]screenrec.Device
	decode(t, w, &devices)
	require.Len(t, devices["video"], 1)
	require.Equal(t, "/dev/video0", devices["video"][0].ID)
	require.Len(t, devices["audio"], 1)

	w = do(t, srv, http.MethodGet, "/monitors", "")
	require.Equal(t, http.StatusOK, w.Code)
	var monitors map[string][]screenrec.Monitor
	decode(t, w, &monitors)
	require.Len(t, monitors["monitors"], 2)
	require.Equal(t, uint(2560), monitors["monitors"][0].Width)
}
