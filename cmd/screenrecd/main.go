package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"

	child_process_manager "github.com/AgustinSRG/go-child-process-manager"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/screenrec/devices"
	"github.com/xaionaro-go/screenrec/ffmpeg"
	"github.com/xaionaro-go/screenrec/httpapi"
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
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	listenAddr := pflag.String("listen-addr", "127.0.0.1:8753", "the address to serve the HTTP API on")
	outputDir := pflag.String("output-dir", os.TempDir(), "where to put recordings when a request does not name an output path")
	encoderPath := pflag.String("encoder", "", "path to (or the bare name of) the ffmpeg executable")
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

	encoder, err := ffmpeg.LookupExecutable(ctx, *encoderPath)
	if err != nil {
		l.Fatal(err)
	}

	rec := recorder.New()
	srv := httpapi.NewServer(
		rec,
		devices.New(),
		monitors.New(),
		httpapi.Config{
			DefaultEncoderPath: encoder,
			OutputDir:          *outputDir,
		},
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	observability.Go(ctx, func(ctx context.Context) {
		select {
		case <-ctx.Done():
		case <-sigCh:
			logger.Infof(ctx, "interrupted, shutting down")
			cancelFn()
		}
	})

	if err := srv.Serve(ctx, *listenAddr); err != nil {
		l.Fatal(err)
	}

	// do not leave an orphaned session behind: the encoder still gets its
	// chance to finalize the file
	teardownCtx := xcontext.DetachDone(ctx)
	if rec.IsRecording(teardownCtx) {
		if err := rec.Stop(teardownCtx); err != nil {
			l.Error(err)
		}
	}
}
