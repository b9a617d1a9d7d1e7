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

//go:build linux

package chanlog

import (
	"log/syslog"
	"testing"
)

func TestSyslog(t *testing.T) {
	if _, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, "test"); err != nil {
		t.Skipf("syslog not found, skipping test: %v", err)
	}

	tl := newTestLogger()
	tl.setVerbosity(1)
	be := NewSyslogSink("chanlog-test")
	be.metrics = new(syslogMetrics)
	tl.setAllSinks(NewSharedSink(be))

	for writtenEntries, ch := range Channels() {
		t.Run(ch.String(), func(t *testing.T) {
			tl.log(ch, 1, "foobar")

			be.metrics.mu.Lock()
			defer be.metrics.mu.Unlock()
			if be.metrics.success != int64(writtenEntries+1) {
				t.Errorf("metrics.success = %d, want: %d (errors: %v)", be.metrics.success, writtenEntries+1, be.metrics.errorMsgs)
			}
		})
	}
}

func TestSyslogPlainWrite(t *testing.T) {
	if _, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, "test"); err != nil {
		t.Skipf("syslog not found, skipping test: %v", err)
	}

	be := NewSyslogSink("chanlog-test")
	n, err := be.Write([]byte("plain write\n"))
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if n != len("plain write\n") {
		t.Errorf("Write() = %d, want: %d", n, len("plain write\n"))
	}
}
