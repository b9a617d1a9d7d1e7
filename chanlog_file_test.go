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
	"path"
	"strings"
	"testing"
)

func TestFileInvalidPath(t *testing.T) {
	logFile := path.Join(t.TempDir(), "missing", "chanlogtest.log")
	sink := NewSharedSink(NewFileSink(logFile))

	if err := sink.writeLine(Error, []byte("Error: foobar\n")); err == nil {
		t.Fatalf("writeLine() expected error, got nil")
	}
}

func TestFileSuccess(t *testing.T) {
	tests := []struct {
		desc    string
		message string
		ch      Channel
		want    string
	}{
		{
			desc:    "error_channel",
			message: "foo bar",
			ch:      Error,
			want:    "Error: foo bar\n",
		},
		{
			desc:    "warning_channel",
			message: "foo bar",
			ch:      Warning,
			want:    "Warning: foo bar\n",
		},
	}

	for i, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			logFile := path.Join(t.TempDir(), fmt.Sprintf("chanlogtest-%d.log", i))
			fs := NewFileSink(logFile)
			if fs.Path() != logFile {
				t.Fatalf("Path() = %q, want: %q", fs.Path(), logFile)
			}

			tl := newTestLogger()
			tl.colorDisabled.Store(true)
			tl.setSink(tc.ch, NewSharedSink(fs))

			tl.log(tc.ch, 0, tc.message)
			tl.log(tc.ch, 1, "suppressed")

			fileContent, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("os.ReadFile(%q) failed: %v", logFile, err)
			}

			if string(fileContent) != tc.want {
				t.Fatalf("file content got: %q, want: %q", string(fileContent), tc.want)
			}
		})
	}
}

func TestFileAppends(t *testing.T) {
	logFile := path.Join(t.TempDir(), "chanlogtest.log")
	tl := newTestLogger()
	tl.colorDisabled.Store(true)
	tl.setAllSinks(NewSharedSink(NewFileSink(logFile)))

	tl.log(Info, 0, "first")
	tl.log(Debug, 0, "second")

	fileContent, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("os.ReadFile(%q) failed: %v", logFile, err)
	}

	if !strings.HasSuffix(string(fileContent), "Info: first\nDebug: second\n") {
		t.Errorf("file content = %q, want both lines in order", string(fileContent))
	}
}
