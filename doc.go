//  Copyright 2024 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package chanlog implements a small process-wide logger where every message
// is logged to a [Channel] at a numeric verbosity level.
//
// There are two orthogonal concepts: the channel describes what kind of
// message is logged ([Critical], [Error], [Warning], [Notice], [Info],
// [Debug] or [Trace]) and the level describes how verbose it is.
//
//	chanlog.SetVerbosity(1)
//
//	chanlog.Log(chanlog.Critical, 3, "A critical error occurred!") // Not emitted.
//	chanlog.Log(chanlog.Error, 2, "This is an error message.")     // Not emitted.
//	chanlog.Log(chanlog.Info, 1, "Processing started.")            // Emitted.
//	chanlog.Log(chanlog.Trace, 0, "Step through the logic here.")  // Emitted.
//
// # Verbosity
//
// The verbosity is a single global value shared by all channels, higher
// values meaning chattier logging. A message is emitted only if its level is
// less or equal to the verbosity set with [SetVerbosity] ([DefaultVerbosity]
// until then). Any integer is a valid level, negative levels are emitted at
// the default verbosity.
//
// The channel plays no part in that decision: a Critical message logged at
// level 3 is suppressed at verbosity 1 while a Trace message at level 0 is
// not.
//
// # Output
//
// An emitted message is written as a single line made of the channel name, a
// colon and the message, i.e. "Info: Processing started.". Each line is
// flushed as soon as it's written.
//
// # Colors
//
// The channel name (and only the name) is painted with the channel's
// [Color] using ANSI sequences. Colors have reasonable defaults and can be
// changed with SetColor:
//
//	chanlog.Notice.SetColor(chanlog.Magenta)
//
// Colors can be globally disabled with [DisableColor], which is recommended
// when logging to anything other than a terminal, and re-enabled with
// [EnableColor]. Channel colors survive disabling.
//
// # Sinks
//
// Every channel writes to its own [SharedSink], by default all channels share
// the [Stdout] sink. A SharedSink wraps any io.Writer and serializes writes
// with its own lock, so a single sink can be shared by several channels:
//
//	buffer := new(bytes.Buffer)
//	sink := chanlog.NewSharedSink(buffer)
//	chanlog.Info.SetSink(sink)
//	chanlog.Debug.SetSink(sink)
//
// The package provides destinations for files ([FileSink]), serial ports
// ([SerialSink]), syslog ([SyslogSink]), the windows event log
// ([EventlogSink]) and google cloud logging ([CloudSink]).
//
// # Failures
//
// Logging never fails from the caller's point of view. Write and flush
// failures are handed to the [ErrorHandler] installed with [SetErrorHandler],
// by default at most one failure a minute is reported to the process' stderr.
//
// # Options
//
// The whole state can also be described with a TOML document, see [Options]
// and [LoadOptions].
package chanlog
