// Package errors renders command failures for the terminal and makes sure
// they also land in the log file before the process exits.
package errors

import (
	"fmt"
	"os"

	"anchor/internal/logger"
)

// Format renders an error with the "Error: " prefix every command failure
// carries on stderr. A nil error renders empty.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a format string and args.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr, and exits with code 1. A nil err is
// a no-op so callers can pass command results straight through.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a format string and args.
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
