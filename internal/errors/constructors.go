package errors

import "strings"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Workspace errors

func WorkspaceError(operation string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

func LinkError(logical, target string, cause error) *BuildError {
	return Wrap(cause, CategoryLink, SeverityFatal, "link creation failed").
		WithContext("logical", logical).
		WithContext("target", target)
}

func VendorError(cause error) *BuildError {
	return Wrap(cause, CategoryVendor, SeverityFatal, "vendor materialization failed")
}

func DiscoveryError(cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "package discovery failed")
}

// Toolchain errors

// ToolFailed records a non-zero exit from an external toolchain command.
// The full command line and exit code travel with the error.
func ToolFailed(argv []string, exitCode int, cause error) *BuildError {
	return Wrap(cause, CategoryTool, SeverityFatal, "command failed").
		WithContext("command", strings.Join(argv, " ")).
		WithContext("exit_code", exitCode)
}

// ToolExitCode extracts the recorded exit code from a tool failure,
// or -1 when the error does not carry one.
func ToolExitCode(err error) int {
	be, ok := err.(*BuildError)
	if !ok || be.Context == nil {
		return -1
	}
	if code, ok := be.Context["exit_code"].(int); ok {
		return code
	}
	return -1
}

// Usage errors

func NoActionSelected() *BuildError {
	return New(CategoryUsage, SeverityFatal, "no action selected")
}
