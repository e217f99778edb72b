package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildErrorFormatting(t *testing.T) {
	err := New(CategoryVendor, SeverityFatal, "vendor materialization failed")
	if !strings.Contains(err.Error(), "vendor") {
		t.Errorf("expected category in message, got: %s", err.Error())
	}

	cause := errors.New("disk full")
	wrapped := Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed")
	if !strings.Contains(wrapped.Error(), "disk full") {
		t.Errorf("expected cause in message, got: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestToolFailedCarriesCommandAndExitCode(t *testing.T) {
	argv := []string{"go", "install", "example.org/proj/pkg/a"}
	err := ToolFailed(argv, 2, errors.New("exit status 2"))

	if !IsCategory(err, CategoryTool) {
		t.Errorf("expected tool category, got %s", GetCategory(err))
	}
	if got := ToolExitCode(err); got != 2 {
		t.Errorf("expected exit code 2, got %d", got)
	}
	if err.Context["command"] != "go install example.org/proj/pkg/a" {
		t.Errorf("unexpected command context: %v", err.Context["command"])
	}
}

func TestToolExitCodeOnForeignError(t *testing.T) {
	if got := ToolExitCode(errors.New("plain")); got != -1 {
		t.Errorf("expected -1 for foreign error, got %d", got)
	}
}

func TestCLIAdapterExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	if code := adapter.ExitCodeFor(nil); code != 0 {
		t.Errorf("nil error should exit 0, got %d", code)
	}
	if code := adapter.ExitCodeFor(ToolFailed([]string{"go", "test"}, 2, nil)); code != 1 {
		t.Errorf("tool failure should exit 1, got %d", code)
	}
	if code := adapter.ExitCodeFor(errors.New("plain")); code != 1 {
		t.Errorf("plain error should exit 1, got %d", code)
	}
}

func TestCLIAdapterFormatting(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	usage := NoActionSelected()
	if got := adapter.FormatError(usage); got != usage.Message {
		t.Errorf("usage errors should format bare, got %q", got)
	}

	tool := ToolFailed([]string{"golint", "./..."}, 3, nil)
	formatted := adapter.FormatError(tool)
	if !strings.Contains(formatted, "golint ./...") || !strings.Contains(formatted, "3") {
		t.Errorf("tool error should name command and exit code, got %q", formatted)
	}
}
