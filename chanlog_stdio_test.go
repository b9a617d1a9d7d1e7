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
	"os"
	"path"
	"testing"
)

func TestStdioSinksShared(t *testing.T) {
	if Stdout() != Stdout() {
		t.Errorf("Stdout() returned different sinks")
	}
	if Stderr() != Stderr() {
		t.Errorf("Stderr() returned different sinks")
	}
	if Stdout() == Stderr() {
		t.Errorf("Stdout() and Stderr() returned the same sink")
	}
}

func TestStdioRegularFile(t *testing.T) {
	logFile := path.Join(t.TempDir(), "stdio.log")
	file, err := os.Create(logFile)
	if err != nil {
		t.Fatalf("os.Create(%q) failed: %v", logFile, err)
	}
	t.Cleanup(func() { file.Close() })

	sink := NewSharedSink(&stdioWriter{name: "stdout", file: file})
	if err := sink.writeLine(Info, []byte("Info: foobar\n")); err != nil {
		t.Fatalf("writeLine() failed: %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("os.ReadFile(%q) failed: %v", logFile, err)
	}
	if string(content) != "Info: foobar\n" {
		t.Errorf("file content = %q, want: %q", string(content), "Info: foobar\n")
	}
}

func TestStdioPipe(t *testing.T) {
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	t.Cleanup(func() {
		reader.Close()
		writer.Close()
	})

	sw := &stdioWriter{name: "stdout", file: writer}
	if _, err := sw.Write([]byte("foobar\n")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := sw.Flush(); err != nil {
		t.Errorf("Flush() on a pipe = %v, want: nil", err)
	}
}

func TestStdioWriteFailure(t *testing.T) {
	file, err := os.Create(path.Join(t.TempDir(), "closed.log"))
	if err != nil {
		t.Fatalf("os.Create() failed: %v", err)
	}
	file.Close()

	sw := &stdioWriter{name: "stderr", file: file}
	if _, err := sw.Write([]byte("foobar\n")); err == nil {
		t.Fatalf("Write() on a closed file expected error, got nil")
	}
}
