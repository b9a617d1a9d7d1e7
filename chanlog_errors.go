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
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultErrorReportInterval is the minimum time between two failures
	// reported by the default error handler.
	DefaultErrorReportInterval = time.Minute
)

// ErrorHandler receives the failures of writing or flushing a channel's sink.
// Handlers are called synchronously from the failing log call and must not log
// through this package, doing so could loop indefinitely on a broken sink.
type ErrorHandler func(ch Channel, err error)

var (
	// defaultErrorHandler reports failures to the process' stderr.
	defaultErrorHandler = NewPeriodicErrorHandler(os.Stderr, DefaultErrorReportInterval)
)

// DiscardErrors is an ErrorHandler silently dropping every failure.
func DiscardErrors(Channel, error) {}

// NewPeriodicErrorHandler returns an ErrorHandler writing failures to w, at
// most one every interval. Failures happening in between are counted and the
// count is included in the next report. Write errors on w are ignored.
//
// w should not be the sink of any channel.
func NewPeriodicErrorHandler(w io.Writer, interval time.Duration) ErrorHandler {
	pl := &periodicLogger{
		writer:  w,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
	return func(ch Channel, err error) { pl.log(ch, err) }
}

// periodicLogger rate limits the failure reports.
type periodicLogger struct {
	// writer receives the reports.
	writer io.Writer
	// limiter allows one report per interval.
	limiter *rate.Limiter
	// suppressed is the number of failures dropped since the last report.
	suppressed int
	// mu protects suppressed and writer.
	mu sync.Mutex
}

// log reports err if the interval has passed since the last report. It
// returns whether err was reported.
func (pl *periodicLogger) log(ch Channel, err error) bool {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if !pl.limiter.Allow() {
		pl.suppressed++
		return false
	}

	msg := fmt.Sprintf("chanlog: failed to write %s line: %v", ch, err)
	if pl.suppressed > 0 {
		msg += fmt.Sprintf(" (%d more failures suppressed)", pl.suppressed)
	}
	pl.suppressed = 0

	fmt.Fprintln(pl.writer, msg)
	return true
}

// SetErrorHandler sets the handler receiving sink failures. A nil handler
// restores the default, which reports at most one failure per
// DefaultErrorReportInterval to the process' stderr.
func SetErrorHandler(handler ErrorHandler) {
	defaultLogger.setErrorHandler(handler)
}

func (lg *logger) setErrorHandler(handler ErrorHandler) {
	if handler == nil {
		lg.errorHandler.Store(nil)
		return
	}
	lg.errorHandler.Store(&handler)
}

// reportError hands err to the installed error handler. A panicking handler
// is ignored.
func (lg *logger) reportError(ch Channel, err error) {
	handler := defaultErrorHandler
	if curr := lg.errorHandler.Load(); curr != nil {
		handler = *curr
	}

	defer func() { _ = recover() }()
	handler(ch, err)
}
