package log

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints top-level results for people running the CLI
type UserLogger struct {
	log     zerolog.Logger
	success *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	info    *pterm.PrefixPrinter
}

// 🎯 NewUserLogger creates a user logger writing to w
func NewUserLogger(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log:     *zerolog.Ctx(ctx),
		success: pterm.Success.WithPrefix(pterm.Prefix{Text: "✅", Style: pterm.Success.Prefix.Style}).WithWriter(w),
		failure: pterm.Error.WithPrefix(pterm.Prefix{Text: "❌", Style: pterm.Error.Prefix.Style}).WithWriter(w),
		warning: pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️", Style: pterm.Warning.Prefix.Style}).WithWriter(w),
		info:    pterm.Info.WithPrefix(pterm.Prefix{Text: "📦", Style: pterm.Info.Prefix.Style}).WithWriter(w),
	}
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	u.info.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.success.Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.failure.Println(description + ": " + err.Error())
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.warning.Println(description)
	u.log.Warn().Msg(description)
}
