/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package termlevel defines the severity scale used by the terminal core's
// logging port (ITerminal). It mirrors the shape of the host logger's level
// package but carries the two extra severities an interactive console needs:
// Milestone (a notable but non-error event worth highlighting) and Verbose
// (below Debug, for per-keystroke / per-token tracing).
package termlevel

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is an interactive-console log severity, ordered from most to least
// severe. The zero value is CriticalLevel.
type Level uint8

const (
	// CriticalLevel reports a failure the host process cannot recover from.
	CriticalLevel Level = iota
	// ErrorLevel reports a failed operation; control returns to the editor.
	ErrorLevel
	// WarningLevel reports a recovered or degraded condition.
	WarningLevel
	// MilestoneLevel reports a notable event worth surfacing above Info.
	MilestoneLevel
	// InfoLevel reports general operational information.
	InfoLevel
	// DebugLevel reports diagnostic detail.
	DebugLevel
	// VerboseLevel reports fine-grained tracing (token-by-token, key-by-key).
	VerboseLevel
	// NilLevel disables logging entirely.
	NilLevel
)

// Int returns the numeric value of the level.
func (l Level) Int() int { return int(l) }

// String returns the full human-readable name of the level.
func (l Level) String() string {
	switch l {
	case CriticalLevel:
		return "Critical"
	case ErrorLevel:
		return "Error"
	case WarningLevel:
		return "Warning"
	case MilestoneLevel:
		return "Milestone"
	case InfoLevel:
		return "Info"
	case DebugLevel:
		return "Debug"
	case VerboseLevel:
		return "Verbose"
	case NilLevel:
		return ""
	}
	return "unknown"
}

// Code returns the short form of the level, suitable for compact log lines.
func (l Level) Code() string {
	switch l {
	case CriticalLevel:
		return "Crit"
	case ErrorLevel:
		return "Err"
	case WarningLevel:
		return "Warn"
	case MilestoneLevel:
		return "Mile"
	case InfoLevel:
		return "Info"
	case DebugLevel:
		return "Dbg"
	case VerboseLevel:
		return "Verb"
	case NilLevel:
		return ""
	}
	return "unknown"
}

// Logrus maps the level onto the nearest logrus.Level. Milestone collapses
// onto Info (logrus has no equivalent), and Verbose collapses onto Debug.
func (l Level) Logrus() logrus.Level {
	switch l {
	case CriticalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarningLevel:
		return logrus.WarnLevel
	case MilestoneLevel, InfoLevel:
		return logrus.InfoLevel
	case DebugLevel, VerboseLevel:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Parse converts a case-insensitive name (full or short form) to a Level.
// Unrecognized input returns InfoLevel, matching the host logger's Parse.
func Parse(s string) Level {
	for _, l := range []Level{CriticalLevel, ErrorLevel, WarningLevel, MilestoneLevel, InfoLevel, DebugLevel, VerboseLevel} {
		if strings.EqualFold(l.String(), s) || strings.EqualFold(l.Code(), s) {
			return l
		}
	}
	return InfoLevel
}

// ListLevels returns the lowercase names of every parseable level, in
// severity order. NilLevel is excluded, as it cannot be parsed from string.
func ListLevels() []string {
	out := make([]string, 0, 7)
	for _, l := range []Level{CriticalLevel, ErrorLevel, WarningLevel, MilestoneLevel, InfoLevel, DebugLevel, VerboseLevel} {
		out = append(out, strings.ToLower(l.String()))
	}
	return out
}
