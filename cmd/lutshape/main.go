package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/lookuptable/pkg/lookuptable"
	"github.com/xaionaro-go/lookuptable/pkg/pcm"
	"github.com/xaionaro-go/lookuptable/pkg/shaper"
	"github.com/xaionaro-go/observability"
)

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	format := pcm.FormatFloat32LE
	pflag.Var(&format, "format", "PCM format of both the input and the output")
	xFlag := pflag.Float64Slice("x", []float64{-1, 1}, "input sample values of the transfer curve in non-decreasing order, comma separated")
	fFlag := pflag.Float64Slice("f", []float64{-1, 1}, "output sample values of the transfer curve, comma separated")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	if *netPprofAddr != "" {
		observability.Go(ctx, func() { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	curve, err := lookuptable.NewStrict(*xFlag, *fFlag)
	assertNoError(err)

	written, err := shape(ctx, os.Stdout, os.Stdin, format, curve)
	assertNoError(err)
	logger.Infof(ctx, "done, written: %d", written)
}

func shape(
	ctx context.Context,
	out io.Writer,
	in io.Reader,
	format pcm.Format,
	curve *lookuptable.Table[float64],
) (uint64, error) {
	s, err := shaper.New(ctx, in, format, curve)
	if err != nil {
		return 0, fmt.Errorf("unable to initialize the shaper: %w", err)
	}

	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	wc := datacounter.NewWriterCounter(out)
	observability.Go(ctx, func() {
		logger.Tracef(ctx, "started the traffic count printer loop")
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Debugf(ctx, "written: %d", wc.Count())
			}
		}
	})

	if _, err := io.Copy(wc, s); err != nil {
		return wc.Count(), fmt.Errorf("unable to shape the stream: %w", err)
	}
	return wc.Count(), nil
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
