/*
 * psx - Main process.
 *
 * Copyright 2024, Richard Cornwell
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
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/psx/command/reader"
	"github.com/rcornwell/psx/emu/core"
	"github.com/rcornwell/psx/util/debug"
	"github.com/rcornwell/psx/util/logger"
)

var Logger *slog.Logger

func main() {
	optBIOS := getopt.StringLong("bios", 'b', "bios.bin", "BIOS ROM image")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebugFile := getopt.StringLong("tracefile", 't', "", "Bus trace file")
	optDebug := getopt.BoolLong("debug", 'd', "Echo log to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("unable to create log file", "file", *optLogFile, "err", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("psx started")

	if *optDebugFile != "" {
		if err := debug.SetTraceFile(*optDebugFile); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	image, err := os.ReadFile(*optBIOS)
	if err != nil {
		Logger.Error("unable to read BIOS image", "file", *optBIOS, "err", err)
		os.Exit(1)
	}

	machine, err := core.New(image, nil)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	reader.ConsoleReader(machine)

	Logger.Info("psx shutting down")
}
