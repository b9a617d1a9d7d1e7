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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/logging"
	"google.golang.org/api/option"
)

// CloudLoggingInitMode is the cloud logging sink initialization mode.
type CloudLoggingInitMode int

const (
	// CloudLoggingInitModeLazy is the lazy initialization mode. In this mode the
	// sink object is created but the cloud logging client and logger are not
	// initialized until the first call to InitClient.
	CloudLoggingInitModeLazy CloudLoggingInitMode = iota
	// CloudLoggingInitModeActive is the active initialization mode. In this mode
	// the sink object is created and the cloud logging client and logger are
	// initialized immediately.
	CloudLoggingInitModeActive
)

var (
	// errCloudLoggingNotInitialized is the error returned when the cloud
	// logging sink is not yet initialized.
	errCloudLoggingNotInitialized = errors.New("cloud logging logger is not yet fully initialized")

	// errCloudLoggingAlreadyInitialized is the error returned when the InitClient
	// is called and cloud logging sink is already initialized.
	errCloudLoggingAlreadyInitialized = errors.New("cloud logging logger is already initialized")

	// cloudSeverities maps a channel to its cloud logging severity.
	cloudSeverities = map[Channel]logging.Severity{
		Critical: logging.Critical,
		Error:    logging.Error,
		Warning:  logging.Warning,
		Notice:   logging.Notice,
		Info:     logging.Info,
		Debug:    logging.Debug,
		Trace:    logging.Debug,
	}
)

// CloudSink is a destination sending log lines to google cloud logging.
type CloudSink struct {
	// mu protects client, logger and opts, InitClient may be called while
	// other goroutines are logging.
	mu sync.RWMutex
	// client is the cloud logging client pointer.
	client *logging.Client
	// logger is the cloud logging logger pointer.
	logger *logging.Logger
	// opts is the cloud logging options.
	opts *CloudOptions
}

// CloudOptions defines the cloud logging behavior and setup options.
type CloudOptions struct {
	// Ident is the logger's ident, or the logger's name.
	Ident string
	// ProgramName is the program name, it's used on the logging payload.
	ProgramName string
	// ProgramVersion is the program version, it's used on the logging payload.
	ProgramVersion string
	// Project the gcp project name.
	Project string
	// Instance the running instance name.
	Instance string
	// UserAgent is the logging user agent option.
	UserAgent string
	// FlushCadence is how frequently the client pushes buffered entries on its
	// own, in addition to the flush following every line.
	FlushCadence time.Duration
	// WithoutAuthentication is whether to use authentication for cloud logging
	// operations.
	WithoutAuthentication bool
}

// CloudEntryPayload contains the data sent to cloud logging as the entry
// payload.
type CloudEntryPayload struct {
	// Message is the log line without its line terminator.
	Message string `json:"message"`
	// Channel is the name of the channel the line was logged to.
	Channel string `json:"channel,omitempty"`
	// LocalTimestamp is the local time the line was written.
	LocalTimestamp string `json:"localTimestamp"`
	// ProgName is the program name - or the binary name.
	ProgName string `json:"progName,omitempty"`
	// ProgVersion is the program version.
	ProgVersion string `json:"progVersion,omitempty"`
}

// NewCloudSink returns a destination sending log lines to google cloud
// logging, wrap it with NewSharedSink to set it as a channel's sink.
//
// If mode is CloudLoggingInitModeLazy only the sink object is allocated and
// lines written before InitClient is called fail with an error (reported
// through the error handler) and are dropped. Lazy initialization supports
// programs whose project or instance name only become known later, i.e. once
// the metadata server is reachable.
func NewCloudSink(ctx context.Context, mode CloudLoggingInitMode, opts *CloudOptions) (*CloudSink, error) {
	res := &CloudSink{}

	if mode == CloudLoggingInitModeActive {
		if err := res.InitClient(ctx, opts); err != nil {
			return nil, fmt.Errorf("failed to initialize cloud logging client: %+v", err)
		}
	}

	return res, nil
}

// InitClient initializes the cloud logging client and logger. Calling it on
// an initialized sink returns an error.
func (cb *CloudSink) InitClient(ctx context.Context, opts *CloudOptions) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.client != nil {
		return errCloudLoggingAlreadyInitialized
	}

	var clientOptions []option.ClientOption

	if opts.UserAgent != "" {
		clientOptions = append(clientOptions, option.WithUserAgent(opts.UserAgent))
	}

	if opts.WithoutAuthentication {
		clientOptions = append(clientOptions, option.WithoutAuthentication())
	}

	client, err := logging.NewClient(ctx, opts.Project, clientOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize cloud logging client: %+v", err)
	}

	// Errors surface from Flush, the client must not print on its own.
	client.OnError = func(error) {}
	var loggerOptions []logging.LoggerOption

	if opts.Instance != "" {
		labelOption := logging.CommonLabels(
			map[string]string{
				"instance_name": opts.Instance,
			},
		)
		loggerOptions = append(loggerOptions, labelOption)
	}

	if opts.FlushCadence > 0 {
		loggerOptions = append(loggerOptions, logging.DelayThreshold(opts.FlushCadence))
	}

	cb.client = client
	cb.logger = client.Logger(opts.Ident, loggerOptions...)
	cb.opts = opts

	return nil
}

// Write sends p to cloud logging with the Info channel's severity.
func (cb *CloudSink) Write(p []byte) (int, error) {
	return cb.WriteChannel(Info, p)
}

// WriteChannel sends p to cloud logging with the severity matching ch.
func (cb *CloudSink) WriteChannel(ch Channel, p []byte) (int, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.logger == nil {
		return 0, errCloudLoggingNotInitialized
	}

	severity, found := cloudSeverities[ch]
	if !found {
		severity = logging.Default
	}

	payload := &CloudEntryPayload{
		Message:        trimLine(p),
		LocalTimestamp: time.Now().Format("2006-01-02T15:04:05.0000Z07:00"),
		ProgName:       cb.opts.ProgramName,
		ProgVersion:    cb.opts.ProgramVersion,
	}
	if ch.valid() {
		payload.Channel = ch.String()
	}

	cb.logger.Log(logging.Entry{
		Severity: severity,
		Payload:  payload,
	})

	return len(p), nil
}

// Flush blocks until the buffered entries are sent to cloud logging.
func (cb *CloudSink) Flush() error {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.logger == nil {
		return errCloudLoggingNotInitialized
	}

	if err := cb.logger.Flush(); err != nil {
		return fmt.Errorf("failed to flush cloud logging: %v", err)
	}
	return nil
}

// Ping reports whether cloud logging is reachable.
func (cb *CloudSink) Ping(ctx context.Context) error {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.client == nil {
		return errCloudLoggingNotInitialized
	}
	return cb.client.Ping(ctx)
}

// Close flushes and closes the cloud logging client. The sink must not be
// used afterwards.
func (cb *CloudSink) Close() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.client == nil {
		return errCloudLoggingNotInitialized
	}

	err := cb.client.Close()
	cb.client = nil
	cb.logger = nil
	if err != nil {
		return fmt.Errorf("failed to close cloud logging client: %v", err)
	}
	return nil
}
