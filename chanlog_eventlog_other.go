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

//go:build !windows

package chanlog

// NewEventlogSink returns a no-op destination as there's no event log outside
// of windows.
func NewEventlogSink(eventID uint32, ident string) (*EventlogSink, error) {
	return &EventlogSink{eventID: eventID, ident: ident}, nil
}

// WriteChannel is no-op for non windows systems.
func (eb *EventlogSink) WriteChannel(ch Channel, p []byte) (int, error) {
	return len(p), nil
}
