// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/renamer/pkg/status"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent entry lines
	nameWidth   = 30 // width for each file name column
	stepWidth   = 15 // width for copy/move status columns
)

// 🎯 Logger renders rename progress to a console and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 NewWithZerolog creates a logger that mirrors to an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, nil when none was added
func FromContext(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func stepText(o status.Outcome, doneText string) (string, color.Attribute) {
	switch o {
	case status.Done:
		return doneText, color.FgGreen
	case status.SkippedExists:
		return "exists", color.FgYellow
	case status.Failed:
		return "failed", color.FgRed
	default:
		return "-", color.Faint
	}
}

// 📝 formatEntry formats one entry outcome for display
func (l *Logger) formatEntry(info status.EntryInfo) string {
	if info.Missing {
		return fmt.Sprintf("%s%s %s %s",
			strings.Repeat(" ", entryIndent),
			color.New(color.FgRed).Sprint("?"),
			fmt.Sprintf("%-*s", nameWidth, info.Old),
			color.New(color.Faint).Sprint("missing"))
	}

	var symbol rune
	var symbolColor color.Attribute
	switch {
	case info.Copy == status.Failed || info.Move == status.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case info.Copy == status.Done && info.Move == status.Done:
		symbol = '✓'
		symbolColor = color.FgGreen
	case info.Copy == status.Done || info.Move == status.Done:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	copyText, copyColor := stepText(info.Copy, "copied")
	moveText, moveColor := stepText(info.Move, "archived")

	return fmt.Sprintf("%s%s %s → %s %s %s",
		strings.Repeat(" ", entryIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, info.Old+info.Ext),
		fmt.Sprintf("%-*s", nameWidth, info.New+info.Ext),
		color.New(copyColor).Sprint(fmt.Sprintf("%-*s", stepWidth, copyText)),
		color.New(moveColor).Sprint(fmt.Sprintf("%-*s", stepWidth, moveText)))
}

// 📝 LogEntry logs the outcome of one mapping row
func (l *Logger) LogEntry(ctx context.Context, info status.EntryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatEntry(info))

	l.zlog.Debug().
		Str("old", info.Old).
		Str("new", info.New).
		Str("ext", info.Ext).
		Str("copy", info.Copy.String()).
		Str("move", info.Move.String()).
		Bool("missing", info.Missing).
		Msg("entry processed")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("renamer")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
