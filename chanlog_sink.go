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
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"
)

// Flusher is implemented by destinations buffering writes, i.e.
// *bufio.Writer. Flush is called after every log line.
type Flusher interface {
	Flush() error
}

// syncer is implemented by destinations backed by a file descriptor, i.e.
// *os.File. It's used to flush when the destination is not a Flusher.
type syncer interface {
	Sync() error
}

// ChannelWriter is implemented by destinations that record the originating
// channel together with the line, such as syslog or cloud logging. When the
// destination is a ChannelWriter WriteChannel is called instead of Write.
type ChannelWriter interface {
	WriteChannel(ch Channel, p []byte) (int, error)
}

// SharedSink is a destination that can be shared by several channels and
// goroutines. Each log line is written and flushed while holding the sink's
// own lock, so lines from different channels sharing a sink never
// interleave. There is no lock shared between different sinks.
type SharedSink struct {
	// mu serializes write and flush of a line.
	mu sync.Mutex
	// writer is the wrapped destination.
	writer io.Writer
}

// NewSharedSink wraps writer so it can be set as the sink of one or more
// channels. Any io.Writer is accepted, see [Flusher] and [ChannelWriter] for
// the optional behaviors the sink honors.
func NewSharedSink(writer io.Writer) *SharedSink {
	return &SharedSink{writer: writer}
}

// Write writes p to the wrapped destination holding the sink's lock. It
// allows the sink to be used as a plain io.Writer by code writing alongside
// the logger. No flush is performed.
func (s *SharedSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.Write(p)
}

// Flush flushes the wrapped destination holding the sink's lock.
func (s *SharedSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return flush(s.writer)
}

// Do calls fn with the wrapped destination while holding the sink's lock. It
// gives synchronized access to the destination, i.e. to read back an in
// memory buffer.
func (s *SharedSink) Do(fn func(w io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.writer)
}

// writeLine writes and flushes line as a single operation. A destination
// panic is turned into an error as logging must never crash the caller.
func (s *SharedSink) writeLine(ch Channel, line []byte) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()

	var n int
	if cw, ok := s.writer.(ChannelWriter); ok {
		n, err = cw.WriteChannel(ch, line)
	} else {
		n, err = s.writer.Write(line)
	}

	if err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}

	if n != len(line) {
		return fmt.Errorf("failed to write the message, wrote %d bytes out of %d bytes", n, len(line))
	}

	if err := flush(s.writer); err != nil {
		return fmt.Errorf("failed to flush log line: %w", err)
	}

	return nil
}

// flush flushes w if it knows how to. Sync failures meaning the descriptor
// can't be synced (terminals, pipes) are not errors.
func flush(w io.Writer) error {
	switch curr := w.(type) {
	case Flusher:
		return curr.Flush()
	case syncer:
		err := curr.Sync()
		if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTSUP) {
			return nil
		}
		return err
	}
	return nil
}
