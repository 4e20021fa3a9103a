/*
 * COMET - CASL assembler command-line entry point.
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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/comet-toolchain/comet/internal/casl"
	"github.com/comet-toolchain/comet/internal/listing"
	"github.com/comet-toolchain/comet/internal/logger"
	"github.com/comet-toolchain/comet/internal/objfile"
)

const version = "casl 1.0"

func main() {
	optListing := getopt.BoolLong("listing", 'a', "Verbose listing to stdout")
	optVersion := getopt.BoolLong("version", 'v', "Print version and exit")
	optDebug := getopt.BoolLong("debug", 'd', "Debug tracing to stderr")
	getopt.Parse()

	if *optVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *optDebug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logger.New(nil, level, *optDebug)))

	files := getopt.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: casl [-avd] file...")
		os.Exit(1)
	}

	status := 0
	for _, path := range files {
		if err := assembleOne(path, *optListing); err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
		}
	}
	os.Exit(status)
}

func assembleOne(path string, verboseListing bool) error {
	slog.Debug("assembling", slog.String("file", path))
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	program, warnings, err := casl.Assemble(src, path)
	if err != nil {
		return err
	}
	listing.WriteWarnings(os.Stderr, warnings)

	if verboseListing {
		listing.Write(os.Stdout, program)
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".obj"
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	if err := objfile.Write(out, program); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	slog.Info("assembled", slog.String("file", path), slog.String("object", outPath), slog.Int("words", len(program.Words)))
	return nil
}
