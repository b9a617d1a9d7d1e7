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

const (
	// eventlogSinkID is the tag used in eventlog sink errors.
	eventlogSinkID = "eventlog"
)

// eventlogMetrics is a struct used to collect eventlog metrics.
type eventlogMetrics struct {
	// success is the number of successful log line writes.
	success int64
	// errors is the number of failed log line writes.
	errors int64
}

// EventlogSink is a destination writing log lines to the windows event log.
// Critical and Error lines are written as errors, Warning lines as warnings
// and everything else as informational events.
type EventlogSink struct {
	// eventID is the ID of the events written.
	eventID uint32
	// ident is the service's ident registered with eventlog.
	ident string
	// metrics is the eventlog metrics.
	metrics *eventlogMetrics
	// registered is true if the event source is installed.
	registered bool
}

// Write writes p to the event log with the Info channel's event type.
func (eb *EventlogSink) Write(p []byte) (int, error) {
	return eb.WriteChannel(Info, p)
}

// Flush is a no-op implementation for the eventlog sink as eventlog is
// opened (and closed) for every log line.
func (eb *EventlogSink) Flush() error {
	return nil
}

// recordMetric records number of success or failures of eventlog writes.
func (eb *EventlogSink) recordMetric(success bool) {
	if eb.metrics == nil {
		return
	}
	if success {
		eb.metrics.success++
	} else {
		eb.metrics.errors++
	}
}
