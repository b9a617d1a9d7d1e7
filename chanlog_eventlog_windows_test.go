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
	"testing"
)

func TestEventlog(t *testing.T) {
	be, err := NewEventlogSink(33, "chanlog-test")
	if err != nil {
		t.Fatalf("NewEventlogSink() failed: %v", err)
	}
	be.metrics = new(eventlogMetrics)

	tl := newTestLogger()
	tl.setAllSinks(NewSharedSink(be))

	for _, ch := range Channels() {
		t.Run(ch.String(), func(t *testing.T) {
			before := be.metrics.success
			tl.log(ch, 0, "foobar")
			if be.metrics.success != before+1 {
				t.Errorf("metrics.success = %d, want: %d (errors: %d)", be.metrics.success, before+1, be.metrics.errors)
			}
		})
	}
}

func TestEventlogEmptyIdent(t *testing.T) {
	if _, err := NewEventlogSink(33, ""); err == nil {
		t.Fatalf("NewEventlogSink() with empty ident = nil error, want: non-nil")
	}
}
