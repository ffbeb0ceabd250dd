package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"steamshelf/core"

	"github.com/jessevdk/go-flags"
)

func main() {
	ops := &core.Options{}
	_, err := flags.Parse(ops)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	var logFile io.Closer
	if ops.LogLocation != "" {
		logFile, err = core.InitLoggingWithPath(ops.LogLocation, ops.Verbose)
	} else {
		logFile, err = core.InitLoggingWithDefaultPath(ops.Verbose)
	}
	closeLog := func() {}
	console := core.ConsoleWriter(false, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
	} else {
		closeLog = func() { logFile.Close() }
		console = core.ConsoleWriter(ops.Verbose, os.Stderr)
	}
	defer closeLog()

	env, err := core.DefaultEnvironment(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}

	channels := core.MakeDefaultChannelProvider()
	done := make(chan struct{})
	go func() {
		core.ConsoleLogger(channels.Logs, console)
		close(done)
	}()

	err = core.RequestMainOperation(context.Background(), env, ops, channels)
	<-done
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}
