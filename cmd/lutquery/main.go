package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/lookuptable/pkg/lookuptable"
)

func main() {
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	xFlag := pflag.Float64Slice("x", nil, "independent samples in non-decreasing order, comma separated")
	fFlag := pflag.Float64Slice("f", nil, "dependent samples, comma separated")
	strictFlag := pflag.Bool("strict", false, "refuse to answer queries if the table is invalid")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	table := lookuptable.New(*xFlag, *fFlag)
	if err := table.Validate(); err != nil {
		if *strictFlag {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			belt.Flush(ctx)
			os.Exit(1)
		}
		logger.Warnf(ctx, "the table is invalid, the results may be meaningless: %v", err)
	}
	if dump := tableDump(loggerLevel, table); dump != "" {
		logger.Tracef(ctx, "table: %s", dump)
	}

	for _, arg := range pflag.Args() {
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			panic(fmt.Errorf("unable to parse query '%s': %w", arg, err))
		}
		logger.Debugf(ctx, "querying %v", t)
		fmt.Printf("%v\t%v\n", t, table.Get(t))
	}
}

// tableDump returns an empty string unless the table would be logged.
func tableDump(level logger.Level, table *lookuptable.Table[float64]) string {
	if level < logger.LevelTrace {
		return ""
	}
	return spew.Sdump(table)
}
