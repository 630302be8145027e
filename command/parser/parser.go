/*
   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package parser implements the console command line: a prefix-matched
// dispatch table over a small set of debugger verbs, following the
// command/parser tokenizer pattern (cmdLine, getWord, matchCommand)
// trimmed to the PSX core's step/breakpoint/register/memory surface.
package parser

import (
	"errors"
	"strings"
	"unicode"

	"github.com/rcornwell/psx/emu/core"
)

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *core.Machine) (bool, error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "go", min: 1, process: goCmd},
	{name: "continue", min: 1, process: goCmd},
	{name: "reset", min: 3, process: reset},
	{name: "break", min: 2, process: setBreak},
	{name: "delete", min: 3, process: deleteBreak},
	{name: "watch", min: 1, process: watch},
	{name: "unwatch", min: 3, process: unwatch},
	{name: "registers", min: 3, process: registers},
	{name: "examine", min: 2, process: examine},
	{name: "deposit", min: 2, process: deposit},
	{name: "disassemble", min: 4, process: disassembleCmd},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand parses and runs one command line against the machine.
func ProcessCommand(commandLine string, m *core.Machine) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, m)
}

// CompleteCmd lists command names whose prefix matches the partial
// command line, for the console's tab-completion hook.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	matches := matchList(name)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// matchCommand reports whether command is a prefix of match.name at
// least match.min characters long.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	for i := range command {
		if match.name[i] != command[i] {
			return false
		}
	}
	return len(command) >= match.min
}

func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line)
}

// getWord returns the next whitespace-delimited token, lower-cased.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for line.pos < len(line.line) && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// restEOL reports whether no more tokens remain on the line.
func (line *cmdLine) restEOL() bool {
	line.skipSpace()
	return line.isEOL()
}
