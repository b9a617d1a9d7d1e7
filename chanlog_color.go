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
)

// Color is a terminal foreground color used to paint channel names.
type Color uint8

const (
	// Primary is the terminal's default foreground, painting with it is a
	// no-op.
	Primary Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite

	numColors = int(BrightWhite) + 1
)

const (
	// colorReset is the ANSI sequence restoring the default style.
	colorReset = "\033[0m"
)

var (
	// colorNames maps a color to the name accepted by ParseColor.
	colorNames = [numColors]string{
		"primary", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
		"bright_black", "bright_red", "bright_green", "bright_yellow",
		"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
	}
)

// String returns the name of the color.
func (c Color) String() string {
	if int(c) >= numColors {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Sequence returns the ANSI escape sequence selecting the color. Primary and
// unknown colors have an empty sequence.
func (c Color) Sequence() string {
	switch {
	case c >= Black && c <= White:
		return fmt.Sprintf("\033[%dm", 30+int(c-Black))
	case c >= BrightBlack && c <= BrightWhite:
		return fmt.Sprintf("\033[%dm", 90+int(c-BrightBlack))
	}
	return ""
}

// Paint wraps s with the color's sequence and a reset sequence.
func (c Color) Paint(s string) string {
	seq := c.Sequence()
	if seq == "" {
		return s
	}
	return seq + s + colorReset
}

// ParseColor returns the color named name, ignoring case. "default" is
// accepted as an alias of "primary" and a "bright" prefix may be written with
// or without a separator (i.e. "bright_red", "bright-red", "brightred").
func ParseColor(name string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "default" {
		return Primary, nil
	}
	if rest, found := strings.CutPrefix(key, "bright"); found {
		key = "bright_" + strings.TrimLeft(rest, "_- ")
	}

	for i, curr := range colorNames {
		if curr == key {
			return Color(i), nil
		}
	}
	return Primary, fmt.Errorf("invalid color %q", name)
}
