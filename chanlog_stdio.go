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

package chanlog

import (
	"fmt"
	"os"
)

var (
	// stdoutSink is the sink shared by every channel by default.
	stdoutSink = NewSharedSink(&stdioWriter{name: "stdout", file: os.Stdout})
	// stderrSink is the process-wide stderr sink.
	stderrSink = NewSharedSink(&stdioWriter{name: "stderr", file: os.Stderr})
)

// stdioWriter writes to one of the process' standard streams.
type stdioWriter struct {
	// name is the stream name used in error messages.
	name string
	// file is the stream's file.
	file *os.File
}

// Stdout returns the sink writing to the process' stdout. It's the default
// sink of every channel. The same sink is returned on every call so all its
// users share one lock.
func Stdout() *SharedSink {
	return stdoutSink
}

// Stderr returns the sink writing to the process' stderr. The same sink is
// returned on every call so all its users share one lock.
func Stderr() *SharedSink {
	return stderrSink
}

// Write writes p to the stream.
func (sw *stdioWriter) Write(p []byte) (int, error) {
	n, err := sw.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write log to %s: %+v", sw.name, err)
	}
	return n, nil
}

// Flush syncs the stream if it was redirected to a regular file. Terminals and
// pipes are unbuffered and can't be synced.
func (sw *stdioWriter) Flush() error {
	info, err := sw.file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	if err := sw.file.Sync(); err != nil {
		return fmt.Errorf("failed to flush %s: %+v", sw.name, err)
	}
	return nil
}
