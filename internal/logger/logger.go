package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	gray    = color.New(color.FgHiBlack)
	blue    = color.New(color.FgBlue)
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	red     = color.New(color.FgRed)
	cyan    = color.New(color.FgCyan)
	magenta = color.New(color.FgMagenta)
	white   = color.New(color.FgWhite)
)

func timestamp() string {
	return gray.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	fmt.Fprintf(color.Output, "%s %s\n", timestamp(), blue.Sprintf(message, args...))
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	fmt.Fprintf(color.Output, "%s %s\n", timestamp(), green.Sprintf("✓ "+message, args...))
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	fmt.Fprintf(color.Output, "%s %s\n", timestamp(), yellow.Sprintf("⚠ "+message, args...))
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	fmt.Fprintf(color.Error, "%s %s\n", timestamp(), red.Sprintf("✗ "+message, args...))
}

// Debug log un message de debug (gris)
func Debug(message string, args ...interface{}) {
	fmt.Fprintf(color.Output, "%s %s\n", timestamp(), gray.Sprintf("DEBUG: "+message, args...))
}

// Request log une requête HTTP avec son status et sa durée
func Request(method, path string, statusCode int, duration time.Duration) {
	status := red
	switch {
	case statusCode >= 200 && statusCode < 300:
		status = green
	case statusCode >= 300 && statusCode < 400:
		status = cyan
	case statusCode >= 400 && statusCode < 500:
		status = yellow
	}

	fmt.Fprintf(color.Output, "%s %s %s %s %s\n",
		timestamp(),
		magenta.Sprintf("%-6s", method),
		white.Sprintf("%-50s", path),
		status.Sprintf("[%d]", statusCode),
		gray.Sprintf("(%s)", formatDuration(duration)),
	)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
