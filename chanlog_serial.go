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

	"go.bug.st/serial"
)

const (
	// DefaultSerialBaud is the default serial baud for serial port writing.
	DefaultSerialBaud = 115200
)

// SerialSink is a destination writing log lines to a serial port.
type SerialSink struct {
	// opts is the serial configuration options.
	opts *SerialOptions
}

// SerialOptions contains the options for the serial sink.
type SerialOptions struct {
	// Port is the serial port name to be written to.
	Port string
	// Baud is the serial port baud, DefaultSerialBaud if zero.
	Baud int
}

// NewSerialSink returns a destination writing to the configured serial port,
// wrap it with NewSharedSink to set it as a channel's sink.
func NewSerialSink(opts *SerialOptions) *SerialSink {
	return &SerialSink{opts: opts}
}

// Write writes p to the serial port. The port is opened and closed on every
// write.
func (sb *SerialSink) Write(p []byte) (int, error) {
	baud := sb.opts.Baud
	if baud == 0 {
		baud = DefaultSerialBaud
	}

	port, err := serial.Open(sb.opts.Port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return 0, fmt.Errorf("error opening serial port: %+v", err)
	}
	defer port.Close()

	nn, err := port.Write(p)
	if err != nil {
		return nn, fmt.Errorf("failed to write log to serial: %+v", err)
	}

	return nn, nil
}

// Flush is a no-op implementation for the serial sink as the port is closed
// after every write.
func (sb *SerialSink) Flush() error {
	return nil
}
