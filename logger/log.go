// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package logger names the verbosity levels glog.V gates on, and
// performs the one-time wiring from a CLI verbosity flag to the glog
// package's process-wide threshold.
package logger

import "github.com/eth-classic/lightchain/logger/glog"

// Verbosity levels, ordered least to most detailed. Callers write
// glog.V(logger.Core).Infof(...) the way the teacher does.
const (
	Error  glog.Level = 0
	Warn   glog.Level = 1
	Info   glog.Level = 2
	Core   glog.Level = 3
	Debug  glog.Level = 4
	Detail glog.Level = 5
)

// SetVerbosity wires a CLI-supplied verbosity level into glog's
// threshold, the way the teacher's New(...) does for its LogSystem.
func SetVerbosity(v int) { glog.SetV(v) }
