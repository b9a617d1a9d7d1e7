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
	"strings"
	"sync/atomic"
)

// Channel identifies the kind of message being logged. Every channel has its
// own color and its own sink.
//
// Channels are listed from most to least severe, but the order is only a
// convention: whether a message is emitted depends on its level and the
// global verbosity, never on its channel.
type Channel int

const (
	// Critical is the channel for failures the program can't recover from.
	Critical Channel = iota
	// Error is the channel for failed operations.
	Error
	// Warning is the channel for unexpected but handled conditions.
	Warning
	// Notice is the channel for significant but normal events.
	Notice
	// Info is the channel for progress messages.
	Info
	// Debug is the channel for developer diagnostics.
	Debug
	// Trace is the channel for step by step execution details.
	Trace

	// numChannels is the number of defined channels.
	numChannels = int(Trace) + 1
)

const (
	// DefaultVerbosity is the verbosity in effect before any SetVerbosity
	// call. Only messages logged at level 0 or below are emitted with it.
	DefaultVerbosity = 0
)

var (
	// defaultLogger is the process-wide logger all package functions and
	// Channel methods operate on.
	defaultLogger *logger

	// channelNames maps a channel to its display name.
	channelNames = [numChannels]string{
		"Critical", "Error", "Warning", "Notice", "Info", "Debug", "Trace",
	}

	// defaultColors maps a channel to its color at startup.
	defaultColors = [numChannels]Color{
		Critical: Red,
		Error:    BrightRed,
		Warning:  Yellow,
		Notice:   Blue,
		Info:     Green,
		Debug:    BrightBlack,
		Trace:    Cyan,
	}
)

// channelState is the mutable state of a single channel. Color and sink are
// updated independently so channels never contend with each other.
type channelState struct {
	// color holds the channel's Color.
	color atomic.Uint32
	// sink is where the channel writes, nil discards the output.
	sink atomic.Pointer[SharedSink]
}

// logger is the backing implementation of the logging facilities.
type logger struct {
	// verbosity is the global threshold, a message is emitted if its level
	// is less or equal to it.
	verbosity atomic.Int64
	// colorDisabled is inverted so the zero value means "colors enabled".
	colorDisabled atomic.Bool
	// channels holds the per channel color and sink.
	channels [numChannels]channelState
	// errorHandler receives sink failures, see SetErrorHandler.
	errorHandler atomic.Pointer[ErrorHandler]
}

// newLogger returns a logger with default colors, DefaultVerbosity and every
// channel writing to sink.
func newLogger(sink *SharedSink) *logger {
	lg := &logger{}
	lg.verbosity.Store(DefaultVerbosity)
	for i := range lg.channels {
		lg.channels[i].color.Store(uint32(defaultColors[i]))
		lg.channels[i].sink.Store(sink)
	}
	return lg
}

// init initializes the default logger.
func init() {
	defaultLogger = newLogger(Stdout())
}

// String returns the display name of the channel.
func (ch Channel) String() string {
	if !ch.valid() {
		return fmt.Sprintf("Channel(%d)", int(ch))
	}
	return channelNames[ch]
}

func (ch Channel) valid() bool {
	return ch >= Critical && int(ch) < numChannels
}

// Channels returns all the channels in declaration order.
func Channels() []Channel {
	res := make([]Channel, numChannels)
	for i := range res {
		res[i] = Channel(i)
	}
	return res
}

// ParseChannel returns the channel whose name matches name, ignoring case. In
// case of an unknown name an error is returned.
func ParseChannel(name string) (Channel, error) {
	for i, curr := range channelNames {
		if strings.EqualFold(curr, name) {
			return Channel(i), nil
		}
	}
	return Channel(-1), fmt.Errorf("invalid channel %q, valid channels are: %s", name, ValidChannels())
}

// ValidChannels returns a string representation of all the channel names.
func ValidChannels() string {
	return strings.Join(channelNames[:], ", ")
}

// Color returns the current color of the channel's name.
func (ch Channel) Color() Color {
	return defaultLogger.color(ch)
}

// SetColor sets the color of the channel's name. It affects all subsequent
// log calls on any goroutine.
func (ch Channel) SetColor(color Color) {
	defaultLogger.setColor(ch, color)
}

// SetSink replaces the channel's destination. The same sink may be shared by
// several channels, in which case their lines are serialized by the sink. A
// nil sink discards the channel's output.
func (ch Channel) SetSink(sink *SharedSink) {
	defaultLogger.setSink(ch, sink)
}

// sink returns the channel's current destination.
func (ch Channel) sink() *SharedSink {
	return defaultLogger.sink(ch)
}

// PaintedName returns the channel name painted with its color, or the plain
// name if colors are globally disabled.
func (ch Channel) PaintedName() string {
	return defaultLogger.paintedName(ch)
}

// Log logs message to the channel at the given level, see [Log].
func (ch Channel) Log(level int, message string) {
	defaultLogger.log(ch, level, message)
}

// Logf logs to the channel at the given level, see [Logf].
func (ch Channel) Logf(level int, format string, args ...any) {
	defaultLogger.logf(ch, level, format, args...)
}

// SetAllSinks points every channel at sink.
func SetAllSinks(sink *SharedSink) {
	defaultLogger.setAllSinks(sink)
}

// SetVerbosity sets the global verbosity. Messages logged at a greater level
// are suppressed from now on, on every goroutine.
func SetVerbosity(v int) {
	defaultLogger.setVerbosity(v)
}

// Verbosity returns the current global verbosity.
func Verbosity() int {
	return defaultLogger.currentVerbosity()
}

// Enabled reports whether a message logged at level would currently be
// emitted. Use it to skip building expensive messages.
func Enabled(level int) bool {
	return defaultLogger.enabled(level)
}

// EnableColor unconditionally enables colored channel names. This is the
// default.
func EnableColor() {
	defaultLogger.colorDisabled.Store(false)
}

// DisableColor unconditionally disables colors on every channel, channel
// colors are kept and restored by EnableColor. Use it when logging to
// anything other than a terminal.
func DisableColor() {
	defaultLogger.colorDisabled.Store(true)
}

// ColorEnabled returns true if colors are globally enabled.
func ColorEnabled() bool {
	return defaultLogger.colorEnabled()
}

// Log writes "<Channel>: <message>" followed by a new line to the channel's
// sink if level is less or equal to the global verbosity, and flushes it.
//
// Log never fails from the caller's perspective: write and flush errors are
// passed to the error handler (see [SetErrorHandler]) and the line is dropped.
func Log(ch Channel, level int, message string) {
	defaultLogger.log(ch, level, message)
}

// Logf is like Log but the message is handled in the manner of fmt.Sprintf.
// Arguments are only formatted if the message is emitted.
func Logf(ch Channel, level int, format string, args ...any) {
	defaultLogger.logf(ch, level, format, args...)
}

func (lg *logger) state(ch Channel) *channelState {
	if !ch.valid() {
		return nil
	}
	return &lg.channels[ch]
}

func (lg *logger) color(ch Channel) Color {
	state := lg.state(ch)
	if state == nil {
		return Primary
	}
	return Color(state.color.Load())
}

func (lg *logger) setColor(ch Channel, color Color) {
	if state := lg.state(ch); state != nil {
		state.color.Store(uint32(color))
	}
}

func (lg *logger) sink(ch Channel) *SharedSink {
	state := lg.state(ch)
	if state == nil {
		return nil
	}
	return state.sink.Load()
}

func (lg *logger) setSink(ch Channel, sink *SharedSink) {
	if state := lg.state(ch); state != nil {
		state.sink.Store(sink)
	}
}

func (lg *logger) setAllSinks(sink *SharedSink) {
	for i := range lg.channels {
		lg.channels[i].sink.Store(sink)
	}
}

func (lg *logger) setVerbosity(v int) {
	lg.verbosity.Store(int64(v))
}

func (lg *logger) currentVerbosity() int {
	return int(lg.verbosity.Load())
}

func (lg *logger) enabled(level int) bool {
	return int64(level) <= lg.verbosity.Load()
}

func (lg *logger) colorEnabled() bool {
	return !lg.colorDisabled.Load()
}

func (lg *logger) paintedName(ch Channel) string {
	if !lg.colorEnabled() {
		return ch.String()
	}
	return lg.color(ch).Paint(ch.String())
}

// formatLine builds the line written for message on ch.
func (lg *logger) formatLine(ch Channel, message string) []byte {
	name := lg.paintedName(ch)
	line := make([]byte, 0, len(name)+len(message)+3)
	line = append(line, name...)
	line = append(line, ": "...)
	line = append(line, message...)
	return append(line, '\n')
}

// log is the dispatch point of every logging call. The verbosity check comes
// first so suppressed messages cost neither formatting nor locking.
func (lg *logger) log(ch Channel, level int, message string) {
	if !lg.enabled(level) {
		return
	}
	lg.emit(ch, message)
}

func (lg *logger) logf(ch Channel, level int, format string, args ...any) {
	if !lg.enabled(level) {
		return
	}
	lg.emit(ch, fmt.Sprintf(format, args...))
}

func (lg *logger) emit(ch Channel, message string) {
	sink := lg.sink(ch)
	if sink == nil {
		return
	}

	if err := sink.writeLine(ch, lg.formatLine(ch, message)); err != nil {
		lg.reportError(ch, err)
	}
}
