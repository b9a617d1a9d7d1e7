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
	"os"
)

// FileSink is a destination appending log lines to a file.
type FileSink struct {
	// logFilePath is the path of the log file.
	logFilePath string
}

// NewFileSink returns a destination appending to the file at logFilePath,
// wrap it with NewSharedSink to set it as a channel's sink. The file is
// created if needed.
func NewFileSink(logFilePath string) *FileSink {
	return &FileSink{logFilePath: logFilePath}
}

// Path returns the path of the log file.
func (fs *FileSink) Path() string {
	return fs.logFilePath
}

// Write appends p to the log file. The file is opened and closed on every
// write so external rotation or removal of the file is picked up.
func (fs *FileSink) Write(p []byte) (int, error) {
	logFile, err := os.OpenFile(fs.logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create/open log file %s: %w", fs.logFilePath, err)
	}
	defer logFile.Close()

	n, err := logFile.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write log to file: %+v", err)
	}

	return n, nil
}

// Flush is a no-op implementation for the file sink as the file is closed
// after every write.
func (fs *FileSink) Flush() error {
	return nil
}
