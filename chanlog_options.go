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
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

const (
	// SinkStdout selects the Stdout sink in an options document.
	SinkStdout = "stdout"
	// SinkStderr selects the Stderr sink in an options document.
	SinkStderr = "stderr"
	// SinkDiscard discards a channel's output in an options document.
	SinkDiscard = "discard"
)

// Options is a declarative description of the logger state, usually decoded
// from a TOML document with LoadOptions:
//
//	verbosity = 2
//	color = false
//
//	[channels.info]
//	color = "magenta"
//	sink = "stderr"
//
//	[channels.debug]
//	file = "/var/log/app-debug.log"
//
// Absent fields leave the corresponding state untouched when applied.
type Options struct {
	// Verbosity is the global verbosity.
	Verbosity *int `toml:"verbosity,omitempty"`
	// Color enables or disables colors globally.
	Color *bool `toml:"color,omitempty"`
	// Channels maps a channel name (case insensitive) to its options.
	Channels map[string]ChannelOptions `toml:"channels,omitempty" validate:"dive"`
}

// ChannelOptions describes the color and sink of a single channel.
type ChannelOptions struct {
	// Color is a color name accepted by ParseColor.
	Color string `toml:"color,omitempty" validate:"omitempty,color_name"`
	// Sink is one of "stdout", "stderr" or "discard".
	Sink string `toml:"sink,omitempty" validate:"omitempty,oneof=stdout stderr discard"`
	// File is the path of a file the channel appends to, see FileSink.
	File string `toml:"file,omitempty" validate:"omitempty,excluded_with=Sink"`
}

// ValidationError describes a single invalid field of an options document.
type ValidationError struct {
	// FieldPath is the dot-notation path of the field, i.e. "channels.info.color".
	FieldPath string
	// Message is the human-readable reason.
	Message string
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("color_name", validateColorName); err != nil {
		panic(err)
	}

	// Report fields by their toml name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateColorName(fl validator.FieldLevel) bool {
	_, err := ParseColor(fl.Field().String())
	return err == nil
}

// getValidationMessage returns a human-readable message for a validation error.
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "color_name":
		return fmt.Sprintf("unknown color %q", e.Value())
	case "excluded_with":
		return "file and sink are mutually exclusive"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// LoadOptionsFile reads and decodes the options document at path.
func LoadOptionsFile(path string) (*Options, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %v", err)
	}

	opts, err := LoadOptions(content)
	if err != nil {
		return nil, fmt.Errorf("invalid options file %s: %w", path, err)
	}
	return opts, nil
}

// LoadOptions decodes and validates a TOML options document. Validation
// failures are returned as ValidationErrors.
func LoadOptions(data []byte) (*Options, error) {
	var opts Options
	if err := toml.Unmarshal(data, &opts); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse options at line %d, column %d: %v", row, col, derr)
		}
		return nil, fmt.Errorf("failed to parse options: %v", err)
	}

	if errs := opts.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return &opts, nil
}

// Validate checks the channel names and the channel options.
func (o *Options) Validate() ValidationErrors {
	var errs ValidationErrors

	for _, name := range o.channelNames() {
		if _, err := ParseChannel(name); err != nil {
			errs = append(errs, ValidationError{
				FieldPath: "channels." + name,
				Message:   fmt.Sprintf("unknown channel, valid channels are: %s", ValidChannels()),
			})
		}
	}

	if err := validate.Struct(o); err != nil {
		var validatorErrs validator.ValidationErrors
		if !errors.As(err, &validatorErrs) {
			return append(errs, ValidationError{Message: err.Error()})
		}
		for _, e := range validatorErrs {
			// Namespace is "Options.channels[info].color".
			path := strings.TrimPrefix(e.Namespace(), "Options.")
			path = strings.NewReplacer("[", ".", "]", "").Replace(path)
			errs = append(errs, ValidationError{FieldPath: path, Message: getValidationMessage(e)})
		}
	}

	return errs
}

// channelNames returns the configured channel names sorted, so errors and
// application happen in a stable order.
func (o *Options) channelNames() []string {
	names := make([]string, 0, len(o.Channels))
	for name := range o.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply applies the options to the global logger state. Options should come
// from LoadOptions, invalid channel names and colors are skipped.
func (o *Options) Apply() {
	defaultLogger.apply(o)
}

func (lg *logger) apply(o *Options) {
	if o.Verbosity != nil {
		lg.setVerbosity(*o.Verbosity)
	}

	if o.Color != nil {
		lg.colorDisabled.Store(!*o.Color)
	}

	for _, name := range o.channelNames() {
		ch, err := ParseChannel(name)
		if err != nil {
			continue
		}
		chOpts := o.Channels[name]

		if chOpts.Color != "" {
			if color, err := ParseColor(chOpts.Color); err == nil {
				lg.setColor(ch, color)
			}
		}

		switch {
		case chOpts.File != "":
			lg.setSink(ch, NewSharedSink(NewFileSink(chOpts.File)))
		case chOpts.Sink == SinkStdout:
			lg.setSink(ch, Stdout())
		case chOpts.Sink == SinkStderr:
			lg.setSink(ch, Stderr())
		case chOpts.Sink == SinkDiscard:
			lg.setSink(ch, nil)
		}
	}
}
