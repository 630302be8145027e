/*
 * psx - Log bus trace data to a file
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

// Package debug writes a plain-text trace of MMIO register accesses
// (GPU, DMA) to an optional file, following a per-device channel trace-line style, minus the S/370 config-file
// registration: this core has one bus, not a pluggable device list,
// so the trace file is set directly from a command line flag.
package debug

import (
	"fmt"
	"os"
)

var traceFile *os.File

// SetTraceFile opens fileName for the bus trace, replacing any
// previously open trace file.
func SetTraceFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create trace file: %s", fileName)
	}
	if traceFile != nil {
		traceFile.Close()
	}
	traceFile = file
	return nil
}

// Tracef appends one module-prefixed line to the trace file. It is a
// silent no-op when no trace file has been set.
func Tracef(module string, format string, a ...interface{}) {
	if traceFile == nil {
		return
	}
	fmt.Fprintf(traceFile, module+": "+format+"\n", a...)
}
