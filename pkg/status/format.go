package status

import (
	"fmt"
)

// FileFormatter defines how entries and progress should be formatted
type FileFormatter interface {
	// FormatEntry formats the outcome of one mapping row
	FormatEntry(info EntryInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatEntry formats an entry outcome with emojis
func (f *DefaultFileFormatter) FormatEntry(info EntryInfo) string {
	src := info.Old + info.Ext
	dst := info.New + info.Ext
	switch {
	case info.Missing:
		return fmt.Sprintf("🔍 Missing %s", info.Old)
	case info.Copy == Failed || info.Move == Failed:
		return fmt.Sprintf("❌ Failed %s", src)
	case info.Copy == Done && info.Move == Done:
		return fmt.Sprintf("✨ Renamed %s -> %s", src, dst)
	case info.Copy == Done:
		return fmt.Sprintf("📝 Copied %s -> %s, original left in place", src, dst)
	case info.Move == Done:
		return fmt.Sprintf("📦 Archived %s, %s already present", src, dst)
	default:
		return fmt.Sprintf("👍 Unchanged %s", src)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
