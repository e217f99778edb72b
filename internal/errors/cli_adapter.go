package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the process exit code for an error.
// Every failure maps to 1; success is 0.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := err.(*BuildError); ok {
		return a.formatBuildError(be)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatBuildError formats a BuildError for display.
func (a *CLIErrorAdapter) formatBuildError(err *BuildError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryUsage, CategoryConfig, CategoryValidation:
		return err.Message
	case CategoryTool:
		if cmd, ok := err.Context["command"].(string); ok {
			return fmt.Sprintf("command failed: %s (exit code %v)", cmd, err.Context["exit_code"])
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// LogError logs an error with appropriate context.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}

	if be, ok := err.(*BuildError); ok {
		attrs := []slog.Attr{
			slog.String("category", string(be.Category)),
		}
		for key, value := range be.Context {
			attrs = append(attrs, slog.Any(key, value))
		}
		a.logger.LogAttrs(nil, slog.LevelError, be.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}
