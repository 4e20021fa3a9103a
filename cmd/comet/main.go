/*
 * COMET - Comet emulator/debugger command-line entry point.
 *
 * Copyright 2026, The COMET Project Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/comet-toolchain/comet/internal/debugger"
	"github.com/comet-toolchain/comet/internal/engine"
	"github.com/comet-toolchain/comet/internal/logger"
)

const banner = "COMET emulator/debugger"

func main() {
	optQuiet := getopt.BoolLong("quiet", 'q', "Suppress startup banner")
	optDebug := getopt.BoolLong("debug", 'd', "Debug tracing to stderr")
	getopt.Parse()

	level := slog.LevelInfo
	if *optDebug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logger.New(nil, level, *optDebug)))

	if !*optQuiet {
		fmt.Println(banner)
	}

	svc := engine.NewStdioSVC(os.Stdin, os.Stdout, os.Stdout)
	dbg := debugger.New(svc)

	args := getopt.Args()
	if len(args) == 1 {
		if err := dbg.File(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	quit := false
	for {
		cmdLine, err := line.Prompt("comet> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				quit = true
			}
			break
		}
		line.AppendHistory(cmdLine)

		runCtx, runCancel := context.WithCancel(ctx)
		q := dispatch(runCtx, dbg, cmdLine)
		runCancel()
		if q {
			quit = true
			break
		}
	}

	if quit {
		os.Exit(1)
	}
	os.Exit(0)
}
