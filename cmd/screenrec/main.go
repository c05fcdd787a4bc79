package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"time"

	child_process_manager "github.com/AgustinSRG/go-child-process-manager"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/screenrec"
	"github.com/xaionaro-go/screenrec/devices"
	"github.com/xaionaro-go/screenrec/ffmpeg"
	"github.com/xaionaro-go/screenrec/monitors"
	"github.com/xaionaro-go/screenrec/recorder"
	"github.com/xaionaro-go/xcontext"
)

func main() {
	err := child_process_manager.InitializeChildProcessManager()
	if err != nil {
		panic(err)
	}
	defer child_process_manager.DisposeChildProcessManager()

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <output-path>\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	listDevicesFlag := pflag.Bool("list-devices", false, "list the capture devices and exit")
	listMonitorsFlag := pflag.Bool("list-monitors", false, "list the monitors and exit")
	mode := screenrec.ModeScreen
	pflag.Var(&mode, "mode", "recording mode: screen, camera or picture_in_picture")
	format := screenrec.ContainerFormatMP4
	pflag.Var(&format, "format", "container format: mp4 or webm")
	regionFlag := pflag.String("region", "", "capture region as WxH+X+Y (default: the geometry of the selected monitor)")
	monitorIdx := pflag.Int("monitor", 0, "the index of the monitor to capture")
	cameraDevice := pflag.String("camera-device", "", "camera device identifier (see --list-devices)")
	audioEnabled := pflag.Bool("audio", false, "record audio")
	audioDevice := pflag.String("audio-device", screenrec.AudioDeviceDefault, "audio device identifier (see --list-devices)")
	encoderPath := pflag.String("encoder", "", "path to (or the bare name of) the ffmpeg executable")
	duration := pflag.Duration("duration", 0, "stop automatically after this long (0: record until interrupted)")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	if *listDevicesFlag {
		listDevices(ctx)
		return
	}
	if *listMonitorsFlag {
		listMonitors(ctx)
		return
	}

	if len(pflag.Args()) != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	encoder, err := ffmpeg.LookupExecutable(ctx, *encoderPath)
	if err != nil {
		l.Fatal(err)
	}

	region, err := resolveRegion(ctx, *regionFlag, *monitorIdx)
	if err != nil {
		l.Fatal(err)
	}

	cfg := screenrec.RecordingConfig{
		OutputPath:    pflag.Arg(0),
		CaptureRegion: region,
		Mode:          mode,
		CameraDevice:  *cameraDevice,
		AudioEnabled:  *audioEnabled,
		AudioDevice:   *audioDevice,
		Format:        format,
		EncoderPath:   encoder,
	}

	r := recorder.New()
	if err := r.Start(ctx, cfg); err != nil {
		l.Fatal(err)
	}
	fmt.Printf("recording to '%s' (interrupt to stop)\n", cfg.OutputPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	pauseCh := notifyPauseSignal()

	var stopTimerCh <-chan time.Time
	if *duration > 0 {
		stopTimer := time.NewTimer(*duration)
		defer stopTimer.Stop()
		stopTimerCh = stopTimer.C
	}

	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigCh:
			stop(ctx, l, r)
			return
		case <-stopTimerCh:
			stop(ctx, l, r)
			return
		case <-pauseCh:
			togglePause(ctx, l, r)
		case <-t.C:
			printStatus(ctx, r)
		}
	}
}

func stop(
	ctx context.Context,
	l logger.Logger,
	r *recorder.Recorder,
) {
	fmt.Printf("\nfinalizing...\n")
	if err := r.Stop(xcontext.DetachDone(ctx)); err != nil {
		l.Error(err)
		return
	}
	fmt.Printf("saved\n")
}

func togglePause(
	ctx context.Context,
	l logger.Logger,
	r *recorder.Recorder,
) {
	var err error
	if r.IsPaused(ctx) {
		err = r.Resume(ctx)
	} else {
		err = r.Pause(ctx)
	}
	if err != nil {
		l.Errorf("unable to toggle the pause: %v", err)
	}
}

func printStatus(
	ctx context.Context,
	r *recorder.Recorder,
) {
	state := "recording"
	if r.IsPaused(ctx) {
		state = "paused"
	}
	elapsed := r.Elapsed(ctx)
	fmt.Printf("\r%s... %02d:%02d", state, int(elapsed.Minutes()), int(elapsed.Seconds())%60)
}

func resolveRegion(
	ctx context.Context,
	regionSpec string,
	monitorIdx int,
) (screenrec.Rectangle, error) {
	if regionSpec != "" {
		var reg screenrec.Rectangle
		if _, err := fmt.Sscanf(regionSpec, "%dx%d+%d+%d", &reg.Width, &reg.Height, &reg.X, &reg.Y); err != nil {
			return screenrec.Rectangle{}, fmt.Errorf("unable to parse the region '%s' (expected WxH+X+Y): %w", regionSpec, err)
		}
		return reg, nil
	}

	mons := monitors.New().ListMonitors(ctx)
	if monitorIdx < 0 || monitorIdx >= len(mons) {
		return screenrec.Rectangle{}, fmt.Errorf("monitor index %d is out of range (have %d monitors)", monitorIdx, len(mons))
	}
	mon := mons[monitorIdx]
	return screenrec.Rectangle{
		X:      mon.X,
		Y:      mon.Y,
		Width:  mon.Width,
		Height: mon.Height,
	}, nil
}

func listDevices(ctx context.Context) {
	dir := devices.New()
	fmt.Printf("video devices:\n")
	for _, dev := range dir.ListVideoDevices(ctx) {
		fmt.Printf("\t%s\t%s\n", dev.ID, dev.Name)
	}
	fmt.Printf("audio devices:\n")
	for _, dev := range dir.ListAudioDevices(ctx) {
		fmt.Printf("\t%s\t%s\n", dev.ID, dev.Name)
	}
}

func listMonitors(ctx context.Context) {
	for i, mon := range monitors.New().ListMonitors(ctx) {
		fmt.Printf("\t%d\t%s\t%dx%d+%d+%d\n", i, mon.Name, mon.Width, mon.Height, mon.X, mon.Y)
	}
}
