// Package httpapi is the remote-control surface of the recorder: a small
// HTTP API to start/stop/pause/resume a recording and to inspect devices,
// monitors and session status.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/screenrec"
	"github.com/xaionaro-go/xsync"
)

type Config struct {
	// DefaultEncoderPath is used when a start request does not name the
	// encoder binary. It is expected to be resolved already.
	DefaultEncoderPath string

	// OutputDir is where recordings land when a start request does not
	// name an output path.
	OutputDir string
}

type Server struct {
	Recorder screenrec.Recorder
	Devices  screenrec.DeviceDirectory
	Monitors screenrec.MonitorDirectory
	Config   Config

	Locker    xsync.Mutex
	sessionID string
	outputTo  string

	router *gin.Engine
}

func NewServer(
	rec screenrec.Recorder,
	devices screenrec.DeviceDirectory,
	monitors screenrec.MonitorDirectory,
	cfg Config,
) *Server {
	srv := &Server{
		Recorder: rec,
		Devices:  devices,
		Monitors: monitors,
		Config:   cfg,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/status", srv.handleStatus)
	router.POST("/recording", srv.handleStart)
	router.DELETE("/recording", srv.handleStop)
	router.POST("/recording/pause", srv.handlePause)
	router.POST("/recording/resume", srv.handleResume)
	router.GET("/devices", srv.handleDevices)
	router.GET("/monitors", srv.handleMonitors)
	srv.router = router
	return srv
}

// Handler exposes the router, mostly for tests.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

func (srv *Server) Serve(
	ctx context.Context,
	listenAddr string,
) error {
	httpSrv := &http.Server{
		Addr:    listenAddr,
		Handler: srv.router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	observability.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		errmon.ObserveErrorCtx(ctx, httpSrv.Close())
	})
	logger.Infof(ctx, "listening on '%s'", listenAddr)
	err := httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type startRequest struct {
	screenrec.RecordingConfig
}

type startResponse struct {
	SessionID  string `json:"session_id"`
	OutputPath string `json:"output_path"`
}

func (srv *Server) handleStart(c *gin.Context) {
	ctx := c.Request.Context()

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := req.RecordingConfig
	srv.applyDefaults(ctx, &cfg)

	if err := srv.Recorder.Start(ctx, cfg); err != nil {
		abortWithError(c, err)
		return
	}

	sessionID := uuid.New().String()
	xsync.DoA2(ctx, &srv.Locker, func(id, path string) {
		srv.sessionID = id
		srv.outputTo = path
	}, sessionID, cfg.OutputPath)

	c.JSON(http.StatusCreated, startResponse{
		SessionID:  sessionID,
		OutputPath: cfg.OutputPath,
	})
}

// applyDefaults fills in what the request left out: the encoder binary,
// a generated output path, and the primary monitor's geometry when no
// capture region was given.
func (srv *Server) applyDefaults(
	ctx context.Context,
	cfg *screenrec.RecordingConfig,
) {
	if cfg.Mode == screenrec.ModeUndefined {
		cfg.Mode = screenrec.ModeScreen
	}
	if cfg.Format == screenrec.ContainerFormatUndefined {
		cfg.Format = screenrec.ContainerFormatMP4
	}
	if cfg.EncoderPath == "" {
		cfg.EncoderPath = srv.Config.DefaultEncoderPath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = filepath.Join(
			srv.Config.OutputDir,
			uuid.New().String()+"."+cfg.Format.String(),
		)
	}
	if cfg.AudioEnabled && cfg.AudioDevice == "" {
		cfg.AudioDevice = screenrec.AudioDeviceDefault
	}
	reg := cfg.CaptureRegion
	if reg.Width == 0 || reg.Height == 0 {
		mon := srv.Monitors.ListMonitors(ctx)[0]
		cfg.CaptureRegion = screenrec.Rectangle{
			X:      mon.X,
			Y:      mon.Y,
			Width:  mon.Width,
			Height: mon.Height,
		}
	}
}

func (srv *Server) handleStop(c *gin.Context) {
	ctx := c.Request.Context()
	if err := srv.Recorder.Stop(ctx); err != nil {
		abortWithError(c, err)
		return
	}
	outputPath := xsync.DoR1(ctx, &srv.Locker, func() string {
		defer func() { srv.sessionID = ""; srv.outputTo = "" }()
		return srv.outputTo
	})
	c.JSON(http.StatusOK, gin.H{"output_path": outputPath})
}

func (srv *Server) handlePause(c *gin.Context) {
	if err := srv.Recorder.Pause(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (srv *Server) handleResume(c *gin.Context) {
	if err := srv.Recorder.Resume(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

type statusResponse struct {
	SessionID      string  `json:"session_id,omitempty"`
	IsRecording    bool    `json:"is_recording"`
	IsPaused       bool    `json:"is_paused"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	OutputPath     string  `json:"output_path,omitempty"`
}

func (srv *Server) handleStatus(c *gin.Context) {
	ctx := c.Request.Context()
	resp := statusResponse{
		IsRecording:    srv.Recorder.IsRecording(ctx),
		IsPaused:       srv.Recorder.IsPaused(ctx),
		ElapsedSeconds: srv.Recorder.Elapsed(ctx).Round(time.Millisecond).Seconds(),
	}
	xsync.DoA1(ctx, &srv.Locker, func(resp *statusResponse) {
		resp.SessionID = srv.sessionID
		resp.OutputPath = srv.outputTo
	}, &resp)
	c.JSON(http.StatusOK, resp)
}

func (srv *Server) handleDevices(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"video": srv.Devices.ListVideoDevices(ctx),
		"audio": srv.Devices.ListAudioDevices(ctx),
	})
}

func (srv *Server) handleMonitors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"monitors": srv.Monitors.ListMonitors(c.Request.Context()),
	})
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

func httpStatus(err error) int {
	var (
		errAlreadyActive screenrec.ErrAlreadyActive
		errNotActive     screenrec.ErrNotActive
		errAlreadyPaused screenrec.ErrAlreadyPaused
		errNotPaused     screenrec.ErrNotPaused
		errUnsupported   screenrec.ErrUnsupportedOperation
		errSpawnFailed   screenrec.ErrSpawnFailed
	)
	switch {
	case errors.As(err, &errAlreadyActive),
		errors.As(err, &errNotActive),
		errors.As(err, &errAlreadyPaused),
		errors.As(err, &errNotPaused):
		return http.StatusConflict
	case errors.As(err, &errUnsupported):
		return http.StatusNotImplemented
	case errors.As(err, &errSpawnFailed):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
