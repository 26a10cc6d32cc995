// Go support for leveled logs, analogous to https://code.google.com/p/google-glog/
//
// Copyright 2013 Google Inc. All Rights Reserved.
// Modifications copyright 2017 ETC Dev Team. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package glog implements leveled logging in the Google glog idiom:
//
//	glog.V(logger.Debug).Infof("validating block %d", number)
//
// Verbosity is a single process-wide threshold (SetV); a call is emitted
// only when its level is at or below that threshold. Unlike the full
// glog this package is modeled on, there is no per-file vmodule
// override, no log rotation and no on-disk log directory: output always
// goes to one writer (stderr by default), colorized by level with
// fatih/color the way the teacher colorizes its CLI output elsewhere.
package glog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
)

// Level is a verbosity threshold; higher means more detail.
type Level int32

const (
	defaultVerbosity Level = 3
)

var verbosity int32 = int32(defaultVerbosity)

// SetV sets the process-wide verbosity threshold.
func SetV(v int) { atomic.StoreInt32(&verbosity, int32(v)) }

// GetV returns the current verbosity threshold.
func GetV() Level { return Level(atomic.LoadInt32(&verbosity)) }

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects where log lines are written. Tests use this to
// capture output instead of polluting stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

type severity int

const (
	sInfo severity = iota
	sWarn
	sError
)

var severityPrefix = map[severity]string{
	sInfo:  "INFO",
	sWarn:  "WARN",
	sError: "EROR",
}

var severityColor = map[severity]*color.Color{
	sInfo:  color.New(color.FgHiBlack),
	sWarn:  color.New(color.FgYellow),
	sError: color.New(color.FgRed),
}

func emit(s severity, msg string) {
	mu.Lock()
	defer mu.Unlock()
	prefix := severityColor[s].Sprintf("[%s]", severityPrefix[s])
	fmt.Fprintf(output, "%s %s\n", prefix, msg)
}

// Verbose gates a family of Info-level calls behind a verbosity check,
// the `glog.V(level).Infof(...)` idiom throughout the rest of this
// codebase.
type Verbose bool

// V reports whether logging at level is enabled given the current
// verbosity threshold, returning a Verbose gate other calls branch on.
func V(level Level) Verbose {
	return Verbose(level <= GetV())
}

func (v Verbose) Info(args ...interface{}) {
	if v {
		emit(sInfo, fmt.Sprint(args...))
	}
}

func (v Verbose) Infof(format string, args ...interface{}) {
	if v {
		emit(sInfo, fmt.Sprintf(format, args...))
	}
}

func (v Verbose) Infoln(args ...interface{}) {
	if v {
		emit(sInfo, fmt.Sprintln(args...))
	}
}

func (v Verbose) Warnf(format string, args ...interface{}) {
	if v {
		emit(sWarn, fmt.Sprintf(format, args...))
	}
}

func (v Verbose) Errorf(format string, args ...interface{}) {
	if v {
		emit(sError, fmt.Sprintf(format, args...))
	}
}

func (v Verbose) Errorln(args ...interface{}) {
	if v {
		emit(sError, fmt.Sprintln(args...))
	}
}

// D is the "display" counterpart to V: intended for the small set of
// status lines a CLI always shows regardless of -v, gated by a
// separate, usually lower, threshold. This package keeps the two
// thresholds unified (D(level) == V(level)) since lightchaind has no
// separate display-verbosity flag.
func D(level Level) Verbose { return V(level) }

// Unconditional helpers, matching the package-level (non-V) glog calls
// used for unconditional progress and fatal messages.
func Infoln(args ...interface{})  { emit(sInfo, fmt.Sprintln(args...)) }
func Infof(format string, args ...interface{}) { emit(sInfo, fmt.Sprintf(format, args...)) }
func Warnln(args ...interface{}) { emit(sWarn, fmt.Sprintln(args...)) }
func Errorln(args ...interface{}) { emit(sError, fmt.Sprintln(args...)) }

func Fatal(args ...interface{}) {
	emit(sError, fmt.Sprint(args...))
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	emit(sError, fmt.Sprintf(format, args...))
	os.Exit(1)
}
