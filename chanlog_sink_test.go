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
	"bytes"
	"errors"
	"io"
	"syscall"
	"testing"
)

type syncWriter struct {
	bytes.Buffer
	err   error
	syncs int
}

func (sw *syncWriter) Sync() error {
	sw.syncs++
	return sw.err
}

func TestFlush(t *testing.T) {
	injected := errors.New("injected sync error")

	tests := []struct {
		desc    string
		err     error
		wantErr bool
	}{
		{"sync_success", nil, false},
		{"sync_einval_ignored", syscall.EINVAL, false},
		{"sync_enotsup_ignored", syscall.ENOTSUP, false},
		{"sync_failure", injected, true},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			writer := &syncWriter{err: tc.err}
			err := flush(writer)
			if (err != nil) != tc.wantErr {
				t.Errorf("flush() = %v, want error: %t", err, tc.wantErr)
			}
			if writer.syncs != 1 {
				t.Errorf("Sync() called %d times, want: 1", writer.syncs)
			}
		})
	}

	if err := flush(new(bytes.Buffer)); err != nil {
		t.Errorf("flush(bytes.Buffer) = %v, want: nil", err)
	}
}

type recordingChannelWriter struct {
	bytes.Buffer
	channels []Channel
}

func (rw *recordingChannelWriter) WriteChannel(ch Channel, p []byte) (int, error) {
	rw.channels = append(rw.channels, ch)
	return rw.Write(p)
}

func TestSharedSinkChannelWriter(t *testing.T) {
	writer := &recordingChannelWriter{}
	sink := NewSharedSink(writer)

	if err := sink.writeLine(Notice, []byte("Notice: foobar\n")); err != nil {
		t.Fatalf("writeLine() failed: %v", err)
	}

	if len(writer.channels) != 1 || writer.channels[0] != Notice {
		t.Errorf("WriteChannel() channels = %v, want: [%s]", writer.channels, Notice)
	}
	if got := writer.String(); got != "Notice: foobar\n" {
		t.Errorf("written = %q, want: %q", got, "Notice: foobar\n")
	}
}

func TestSharedSinkWriteAndDo(t *testing.T) {
	buffer := new(bytes.Buffer)
	sink := NewSharedSink(buffer)

	if _, err := io.WriteString(sink, "raw\n"); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	var got string
	sink.Do(func(w io.Writer) {
		got = w.(*bytes.Buffer).String()
	})
	if got != "raw\n" {
		t.Errorf("Do() saw %q, want: %q", got, "raw\n")
	}
}

func TestSharedSinkWriteLineFailures(t *testing.T) {
	tests := []struct {
		desc   string
		writer io.Writer
	}{
		{"write_failure", errorWriter{failureType: writeFailure}},
		{"write_len_failure", errorWriter{failureType: writeLenFailure}},
		{"write_panic", errorWriter{failureType: writePanic}},
		{"sync_failure", &syncWriter{err: errors.New("injected sync error")}},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			sink := NewSharedSink(tc.writer)
			if err := sink.writeLine(Info, []byte("Info: foobar\n")); err == nil {
				t.Fatalf("writeLine() expected error, got nil")
			}

			// The lock must have been released.
			sink.Do(func(io.Writer) {})
		})
	}
}
