package logfields

import (
	"errors"
	"testing"
)

func TestErrorNil(t *testing.T) {
	attr := Error(nil)
	if attr.Value.String() != "" {
		t.Errorf("Error(nil) should render empty, got %q", attr.Value.String())
	}
}

func TestErrorNonNil(t *testing.T) {
	attr := Error(errors.New("boom"))
	if attr.Value.String() != "boom" {
		t.Errorf("unexpected rendering: %q", attr.Value.String())
	}
	if attr.Key != KeyError {
		t.Errorf("expected key %q, got %q", KeyError, attr.Key)
	}
}

func TestCommandJoinsArgv(t *testing.T) {
	attr := Command([]string{"go", "install", "example.org/proj/pkg/a"})
	if attr.Value.String() != "go install example.org/proj/pkg/a" {
		t.Errorf("unexpected command rendering: %q", attr.Value.String())
	}
}
