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

//go:build windows

package chanlog

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/svc/eventlog"
)

// NewEventlogSink returns a destination writing events with eventID to the
// event log source ident, wrap it with NewSharedSink to set it as a channel's
// sink.
func NewEventlogSink(eventID uint32, ident string) (*EventlogSink, error) {
	if ident == "" {
		return nil, fmt.Errorf("%s ident must not be empty", eventlogSinkID)
	}
	return &EventlogSink{eventID: eventID, ident: ident}, nil
}

// WriteChannel writes p to the event log with the event type matching ch.
func (eb *EventlogSink) WriteChannel(ch Channel, p []byte) (int, error) {
	if err := eb.writeLine(ch, trimLine(p)); err != nil {
		eb.recordMetric(false)
		return 0, err
	}
	eb.recordMetric(true)
	return len(p), nil
}

func (eb *EventlogSink) writeLine(ch Channel, message string) error {
	// Only attempt to install the event source if we've not managed to register
	// before.
	if !eb.registered {
		err := eventlog.InstallAsEventCreate(eb.ident, eventlog.Info|eventlog.Warning|eventlog.Error)
		if err != nil && !strings.Contains(err.Error(), "registry key already exists") {
			return fmt.Errorf("failed to install %s: %+v", eventlogSinkID, err)
		}
		eb.registered = true
	}

	writer, err := eventlog.Open(eb.ident)
	if err != nil {
		return fmt.Errorf("failed to open %s: %+v", eventlogSinkID, err)
	}
	defer writer.Close()

	fn := writer.Info
	switch ch {
	case Critical, Error:
		fn = writer.Error
	case Warning:
		fn = writer.Warning
	}

	if err := fn(eb.eventID, message); err != nil {
		return fmt.Errorf("writing to %s: %+v", eventlogSinkID, err)
	}

	return nil
}
