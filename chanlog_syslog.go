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
	"sync"
)

const (
	// syslogSinkID is the tag used in syslog sink errors.
	syslogSinkID = "syslog"
)

// syslogMetrics is a struct used to collect syslog metrics.
type syslogMetrics struct {
	// mu protects metric updates.
	mu sync.Mutex
	// success is the number of successful log line writes.
	success int64
	// errors is the number of failed log line writes.
	errors int64
	// errorMsgs is the list of error messages.
	errorMsgs []string
}

// SyslogSink is a destination writing log lines to the linux syslog. Each
// channel is mapped to the syslog severity of the same name (Trace is mapped
// to debug).
type SyslogSink struct {
	// ident is the syslog entry ident, it's passed down to the syslog writer.
	ident string
	// metrics is the syslog metrics.
	metrics *syslogMetrics
}

// NewSyslogSink returns a destination writing to the underlying system's
// syslog framework, wrap it with NewSharedSink to set it as a channel's sink.
func NewSyslogSink(ident string) *SyslogSink {
	return &SyslogSink{ident: ident}
}

// Write writes p to syslog with the Info channel's severity.
func (sb *SyslogSink) Write(p []byte) (int, error) {
	return sb.WriteChannel(Info, p)
}

// Flush is a no-op implementation for the syslog sink as syslog is opened
// (and closed) for every log line.
func (sb *SyslogSink) Flush() error {
	return nil
}

// recordMetric records number of success or failures of syslog writes.
func (sb *SyslogSink) recordMetric(err error) {
	if sb.metrics == nil {
		return
	}
	sb.metrics.mu.Lock()
	defer sb.metrics.mu.Unlock()
	if err == nil {
		sb.metrics.success++
	} else {
		sb.metrics.errors++
		sb.metrics.errorMsgs = append(sb.metrics.errorMsgs, err.Error())
	}
}

// trimLine removes the line terminator, syslog records are single lines.
func trimLine(p []byte) string {
	return string(bytes.TrimRight(p, "\r\n"))
}
