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
	"fmt"
	"log/syslog"
)

// WriteChannel writes p to syslog with the severity matching ch.
func (sb *SyslogSink) WriteChannel(ch Channel, p []byte) (int, error) {
	if err := sb.writeLine(ch, trimLine(p)); err != nil {
		sb.recordMetric(err)
		return 0, err
	}
	sb.recordMetric(nil)
	return len(p), nil
}

func (sb *SyslogSink) writeLine(ch Channel, message string) error {
	writer, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, sb.ident)
	if err != nil {
		return fmt.Errorf("opening %s: %v", syslogSinkID, err)
	}
	defer writer.Close()

	ops := map[Channel]func(string) error{
		Critical: writer.Crit,
		Error:    writer.Err,
		Warning:  writer.Warning,
		Notice:   writer.Notice,
		Info:     writer.Info,
		Debug:    writer.Debug,
		Trace:    writer.Debug,
	}

	fn, found := ops[ch]
	if !found {
		fn = writer.Info
	}

	if err := fn(message); err != nil {
		return fmt.Errorf("writing to %s: %v", syslogSinkID, err)
	}

	return nil
}
